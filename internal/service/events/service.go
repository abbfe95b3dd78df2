package events

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/afrowave/api/internal/model/event"
)

const (
	tixURL  = "https://tix.africa/discover"
	lumaURL = "https://lu.ma/lagos"

	sourceTix  = "tix.africa"
	sourceLuma = "luma"
)

// Service scrapes two external listing pages. Every call re-fetches live
// pages; nothing is cached between requests.
type Service struct {
	client *http.Client
}

// NewService builds the scraper with a bounded HTTP client.
func NewService() *Service {
	return &Service{client: &http.Client{Timeout: 20 * time.Second}}
}

// Scrape fetches both sources. A failing source fails the whole call; the
// handler surfaces it as an upstream error.
func (s *Service) Scrape(ctx context.Context) ([]event.Event, error) {
	tix, err := s.ScrapeTix(ctx)
	if err != nil {
		return nil, err
	}

	luma, err := s.ScrapeLuma(ctx)
	if err != nil {
		return nil, err
	}

	return append(tix, luma...), nil
}

// ScrapeTix fetches and parses the tix.africa discover page.
func (s *Service) ScrapeTix(ctx context.Context) ([]event.Event, error) {
	return s.ScrapeURL(ctx, tixURL, sourceTix)
}

// ScrapeLuma fetches and parses the lu.ma Lagos page.
func (s *Service) ScrapeLuma(ctx context.Context) ([]event.Event, error) {
	return s.ScrapeURL(ctx, lumaURL, sourceLuma)
}

// ScrapeURL fetches one listing page and parses it with the selector set
// for the named source. Exposed so tests can point at fixture servers.
func (s *Service) ScrapeURL(ctx context.Context, url, source string) ([]event.Event, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var events []event.Event
	switch source {
	case sourceLuma:
		events = parseLumaDocument(doc)
	default:
		events = parseTixDocument(doc)
	}

	log.Printf("[events] scraped %d events from %s", len(events), source)
	return events, nil
}

func (s *Service) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; afrowave-api/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}

// parseTixDocument extracts event cards from the tix.africa listing markup.
func parseTixDocument(doc *goquery.Document) []event.Event {
	events := make([]event.Event, 0)

	doc.Find("div.event-card").Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(".event-card__title").Text())
		if title == "" {
			return
		}

		price := strings.TrimSpace(card.Find(".event-card__price").Text())
		url, _ := card.Find("a").First().Attr("href")

		events = append(events, event.Event{
			Title:  title,
			Date:   strings.TrimSpace(card.Find(".event-card__date").Text()),
			Venue:  strings.TrimSpace(card.Find(".event-card__venue").Text()),
			City:   strings.TrimSpace(card.Find(".event-card__location").Text()),
			Price:  price,
			Free:   isFreePrice(price),
			URL:    url,
			Source: sourceTix,
		})
	})

	return events
}

// parseLumaDocument extracts event rows from the lu.ma city page markup.
func parseLumaDocument(doc *goquery.Document) []event.Event {
	events := make([]event.Event, 0)

	doc.Find("div.event-link, a.event-link").Each(func(_ int, row *goquery.Selection) {
		title := strings.TrimSpace(row.Find("h3").First().Text())
		if title == "" {
			return
		}

		price := strings.TrimSpace(row.Find(".price").Text())
		url, ok := row.Attr("href")
		if !ok {
			url, _ = row.Find("a").First().Attr("href")
		}
		if strings.HasPrefix(url, "/") {
			url = "https://lu.ma" + url
		}

		events = append(events, event.Event{
			Title:  title,
			Date:   strings.TrimSpace(row.Find(".date, time").First().Text()),
			Venue:  strings.TrimSpace(row.Find(".venue").Text()),
			City:   "Lagos",
			Price:  price,
			Free:   isFreePrice(price),
			URL:    url,
			Source: sourceLuma,
		})
	})

	return events
}

func isFreePrice(price string) bool {
	lowered := strings.ToLower(strings.TrimSpace(price))
	return lowered == "" || lowered == "free" || lowered == "₦0" || lowered == "0"
}

// FilterLagos keeps events located in Lagos.
func FilterLagos(events []event.Event) []event.Event {
	matches := make([]event.Event, 0)
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.City), "lagos") || strings.Contains(strings.ToLower(e.Venue), "lagos") {
			matches = append(matches, e)
		}
	}
	return matches
}

// FilterFree keeps events with no ticket price.
func FilterFree(events []event.Event) []event.Event {
	matches := make([]event.Event, 0)
	for _, e := range events {
		if e.Free {
			matches = append(matches, e)
		}
	}
	return matches
}

// Search keeps events whose title, venue or city contains the query,
// case-insensitively.
func Search(events []event.Event, query string) []event.Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return events
	}

	matches := make([]event.Event, 0)
	for _, e := range events {
		haystack := strings.ToLower(e.Title + " " + e.Venue + " " + e.City)
		if strings.Contains(haystack, q) {
			matches = append(matches, e)
		}
	}
	return matches
}
