package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/afrowave/api/internal/model/dataset"
)

// TrackFilter bounds the audio-feature range filter. Nil means unbounded.
type TrackFilter struct {
	MinEnergy       *float64
	MaxEnergy       *float64
	MinDanceability *float64
	MaxDanceability *float64
	MinTempo        *float64
	MaxTempo        *float64
}

// Provider serves read-only views over the bundled JSON collections.
// All slices are immutable after Load; reads hand out copies.
type Provider struct {
	afro     []dataset.AfroTrack
	youtube  []dataset.YouTubeTrack
	concerts []dataset.Concert
	sales    []dataset.BusinessSale
	movies   []dataset.Movie
	stats    dataset.Stats
}

// Load reads every collection from dir once. Any missing or malformed file
// is a startup failure.
func Load(dir string) (*Provider, error) {
	p := &Provider{}

	if err := loadJSON(filepath.Join(dir, "afro_tracks.json"), &p.afro); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "youtube_tracks.json"), &p.youtube); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "concerts.json"), &p.concerts); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "business_sales.json"), &p.sales); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "movies.json"), &p.movies); err != nil {
		return nil, err
	}

	p.stats = computeStats(p)
	return p, nil
}

// NewProvider builds a provider from in-memory rows, mainly for tests.
func NewProvider(afro []dataset.AfroTrack, youtube []dataset.YouTubeTrack, concerts []dataset.Concert, sales []dataset.BusinessSale, movies []dataset.Movie) *Provider {
	p := &Provider{
		afro:     append([]dataset.AfroTrack(nil), afro...),
		youtube:  append([]dataset.YouTubeTrack(nil), youtube...),
		concerts: append([]dataset.Concert(nil), concerts...),
		sales:    append([]dataset.BusinessSale(nil), sales...),
		movies:   append([]dataset.Movie(nil), movies...),
	}
	p.stats = computeStats(p)
	return p
}

func loadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return nil
}

// Stats returns the precomputed aggregates.
func (p *Provider) Stats() dataset.Stats {
	return p.stats
}

// TopAfro returns the n most streamed Afrobeats tracks.
func (p *Provider) TopAfro(n int) []dataset.AfroTrack {
	sorted := append([]dataset.AfroTrack(nil), p.afro...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Streams > sorted[j].Streams })
	return clampAfro(sorted, n)
}

// TopYouTube returns the n most viewed YouTube tracks.
func (p *Provider) TopYouTube(n int) []dataset.YouTubeTrack {
	sorted := append([]dataset.YouTubeTrack(nil), p.youtube...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SearchAfro finds tracks whose artist contains the query, case-insensitively.
func (p *Provider) SearchAfro(artist string) []dataset.AfroTrack {
	query := strings.ToLower(strings.TrimSpace(artist))
	matches := make([]dataset.AfroTrack, 0)
	for _, track := range p.afro {
		if strings.Contains(strings.ToLower(track.Artist), query) {
			matches = append(matches, track)
		}
	}
	return matches
}

// SearchYouTube finds YouTube rows whose artist contains the query.
func (p *Provider) SearchYouTube(artist string) []dataset.YouTubeTrack {
	query := strings.ToLower(strings.TrimSpace(artist))
	matches := make([]dataset.YouTubeTrack, 0)
	for _, track := range p.youtube {
		if strings.Contains(strings.ToLower(track.Artist), query) {
			matches = append(matches, track)
		}
	}
	return matches
}

// FilterAfro applies the audio-feature range filter.
func (p *Provider) FilterAfro(filter TrackFilter) []dataset.AfroTrack {
	matches := make([]dataset.AfroTrack, 0)
	for _, track := range p.afro {
		if !within(track.Energy, filter.MinEnergy, filter.MaxEnergy) {
			continue
		}
		if !within(track.Danceability, filter.MinDanceability, filter.MaxDanceability) {
			continue
		}
		if !within(track.Tempo, filter.MinTempo, filter.MaxTempo) {
			continue
		}
		matches = append(matches, track)
	}
	return matches
}

// Concerts returns the live-show rows.
func (p *Provider) Concerts() []dataset.Concert {
	return append([]dataset.Concert(nil), p.concerts...)
}

// Movies returns the film rows.
func (p *Provider) Movies() []dataset.Movie {
	return append([]dataset.Movie(nil), p.movies...)
}

func within(value float64, min, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func clampAfro(tracks []dataset.AfroTrack, n int) []dataset.AfroTrack {
	if n > 0 && len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}

func computeStats(p *Provider) dataset.Stats {
	stats := dataset.Stats{
		AfroTrackCount:    len(p.afro),
		YouTubeTrackCount: len(p.youtube),
		ConcertCount:      len(p.concerts),
		BusinessSaleCount: len(p.sales),
		MovieCount:        len(p.movies),
	}

	var energy, danceability, tempo float64
	streamsByArtist := make(map[string]int64)
	for _, track := range p.afro {
		stats.TotalStreams += track.Streams
		energy += track.Energy
		danceability += track.Danceability
		tempo += track.Tempo
		streamsByArtist[track.Artist] += track.Streams
	}
	if n := len(p.afro); n > 0 {
		stats.AvgEnergy = energy / float64(n)
		stats.AvgDanceability = danceability / float64(n)
		stats.AvgTempo = tempo / float64(n)
	}
	stats.TopStreamedArtist = maxKey(streamsByArtist)

	viewsByArtist := make(map[string]int64)
	for _, track := range p.youtube {
		stats.TotalViews += track.Views
		viewsByArtist[track.Artist] += track.Views
	}
	stats.MostViewedYouTuber = maxKey(viewsByArtist)

	for _, concert := range p.concerts {
		stats.TotalAttendance += concert.Attendance
		stats.TotalGateRevenue += concert.Revenue
	}

	revenueByCategory := make(map[string]float64)
	for _, sale := range p.sales {
		revenueByCategory[sale.Category] += sale.Revenue
	}
	for category, revenue := range revenueByCategory {
		if revenue > stats.TopSalesRevenue || (revenue == stats.TopSalesRevenue && category < stats.TopSalesCategory) {
			stats.TopSalesCategory = category
			stats.TopSalesRevenue = revenue
		}
	}

	var runtime int
	for _, movie := range p.movies {
		runtime += movie.Runtime
	}
	if n := len(p.movies); n > 0 {
		stats.AvgMovieRuntime = float64(runtime) / float64(n)
	}

	return stats
}

func maxKey(m map[string]int64) string {
	var best string
	var bestValue int64 = -1
	for key, value := range m {
		if value > bestValue || (value == bestValue && key < best) {
			best = key
			bestValue = value
		}
	}
	return best
}
