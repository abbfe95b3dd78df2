package events

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/model/event"
	eventsService "github.com/afrowave/api/internal/service/events"
	"github.com/afrowave/api/pkg/utils"
)

// Handler serves the live event-scraping surface.
type Handler struct {
	scraper *eventsService.Service
}

// New creates the events handler.
func New(scraper *eventsService.Service) *Handler {
	return &Handler{scraper: scraper}
}

// RegisterRoutes registers the events routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/scrape", h.handleScrapeAll)
	r.Get("/tix", h.handleTix)
	r.Get("/luma", h.handleLuma)
	r.Get("/lagos", h.filtered(eventsService.FilterLagos))
	r.Get("/free", h.filtered(eventsService.FilterFree))
	r.Get("/search", h.handleSearch)
}

type eventsResponse struct {
	Count  int           `json:"count"`
	Events []event.Event `json:"events"`
}

func (h *Handler) handleScrapeAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.scraper.Scrape(r.Context())
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, eventsResponse{Count: len(all), Events: all})
}

func (h *Handler) handleTix(w http.ResponseWriter, r *http.Request) {
	scraped, err := h.scraper.ScrapeTix(r.Context())
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, eventsResponse{Count: len(scraped), Events: scraped})
}

func (h *Handler) handleLuma(w http.ResponseWriter, r *http.Request) {
	scraped, err := h.scraper.ScrapeLuma(r.Context())
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, eventsResponse{Count: len(scraped), Events: scraped})
}

// filtered scrapes both sources and applies a pure filter to the result.
func (h *Handler) filtered(filter func([]event.Event) []event.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := h.scraper.Scrape(r.Context())
		if err != nil {
			h.respondScrapeError(w, err)
			return
		}
		matches := filter(all)
		utils.RespondJSON(w, http.StatusOK, eventsResponse{Count: len(matches), Events: matches})
	}
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	all, err := h.scraper.Scrape(r.Context())
	if err != nil {
		h.respondScrapeError(w, err)
		return
	}

	matches := eventsService.Search(all, query)
	utils.RespondJSON(w, http.StatusOK, eventsResponse{Count: len(matches), Events: matches})
}

func (h *Handler) respondScrapeError(w http.ResponseWriter, err error) {
	log.Printf("[events] scrape failed: %v", err)
	utils.RespondErrorDetails(w, http.StatusInternalServerError, "failed to scrape events", err.Error())
}
