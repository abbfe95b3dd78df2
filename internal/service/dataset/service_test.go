package dataset_test

import (
	"testing"

	model "github.com/afrowave/api/internal/model/dataset"
	"github.com/afrowave/api/internal/service/dataset"
)

func testProvider() *dataset.Provider {
	afro := []model.AfroTrack{
		{Artist: "Rema", Title: "Calm Down", Genre: "afropop", Streams: 900, Energy: 0.8, Danceability: 0.84, Tempo: 107},
		{Artist: "Wizkid", Title: "Essence", Genre: "afrobeats", Streams: 600, Energy: 0.68, Danceability: 0.79, Tempo: 104},
		{Artist: "Tems", Title: "Free Mind", Genre: "alte", Streams: 400, Energy: 0.52, Danceability: 0.61, Tempo: 94},
		{Artist: "Burna Boy", Title: "Last Last", Genre: "afro-fusion", Streams: 500, Energy: 0.74, Danceability: 0.81, Tempo: 102},
	}
	youtube := []model.YouTubeTrack{
		{Artist: "Rema", Title: "Calm Down Video", Views: 700, Likes: 10},
		{Artist: "CKay", Title: "Love Nwantiti", Views: 500, Likes: 8},
	}
	concerts := []model.Concert{
		{Artist: "Burna Boy", City: "London", Attendance: 60000, Revenue: 4800000},
		{Artist: "Davido", City: "Lagos", Attendance: 35000, Revenue: 1600000},
	}
	sales := []model.BusinessSale{
		{Category: "tickets", Revenue: 4200000},
		{Category: "merchandise", Revenue: 1092000},
		{Category: "merchandise", Revenue: 1353000},
	}
	movies := []model.Movie{
		{Title: "The Black Book", Runtime: 120},
		{Title: "Anikulapo", Runtime: 140},
	}
	return dataset.NewProvider(afro, youtube, concerts, sales, movies)
}

func TestTopAfroOrdering(t *testing.T) {
	p := testProvider()

	top := p.TopAfro(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(top))
	}
	if top[0].Artist != "Rema" || top[1].Artist != "Wizkid" {
		t.Fatalf("wrong ordering: %s, %s", top[0].Artist, top[1].Artist)
	}
}

func TestTopAfroZeroLimitReturnsAll(t *testing.T) {
	p := testProvider()
	if got := len(p.TopAfro(0)); got != 4 {
		t.Fatalf("expected all 4 tracks, got %d", got)
	}
}

func TestSearchAfroCaseInsensitive(t *testing.T) {
	p := testProvider()

	matches := p.SearchAfro("burna")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Title != "Last Last" {
		t.Fatalf("unexpected match: %s", matches[0].Title)
	}

	if got := len(p.SearchAfro("nobody")); got != 0 {
		t.Fatalf("expected no matches, got %d", got)
	}
}

func TestFilterAfroRanges(t *testing.T) {
	p := testProvider()

	minEnergy := 0.7
	maxTempo := 105.0
	matches := p.FilterAfro(dataset.TrackFilter{MinEnergy: &minEnergy, MaxTempo: &maxTempo})

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Artist != "Burna Boy" {
		t.Fatalf("unexpected match: %s", matches[0].Artist)
	}
}

func TestStatsAggregates(t *testing.T) {
	p := testProvider()
	stats := p.Stats()

	if stats.AfroTrackCount != 4 || stats.YouTubeTrackCount != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.TotalStreams != 2400 {
		t.Fatalf("TotalStreams = %d, want 2400", stats.TotalStreams)
	}
	if stats.TopStreamedArtist != "Rema" {
		t.Fatalf("TopStreamedArtist = %s", stats.TopStreamedArtist)
	}
	if stats.MostViewedYouTuber != "Rema" {
		t.Fatalf("MostViewedYouTuber = %s", stats.MostViewedYouTuber)
	}
	if stats.TotalAttendance != 95000 {
		t.Fatalf("TotalAttendance = %d", stats.TotalAttendance)
	}
	// tickets 4.2M vs merchandise 2.445M combined
	if stats.TopSalesCategory != "tickets" {
		t.Fatalf("TopSalesCategory = %s", stats.TopSalesCategory)
	}
	if stats.AvgMovieRuntime != 130 {
		t.Fatalf("AvgMovieRuntime = %f", stats.AvgMovieRuntime)
	}
}
