package ai

import (
	"fmt"
	"strings"

	"github.com/afrowave/api/internal/model/chat"
	"github.com/afrowave/api/internal/model/dataset"
)

// HistoryWindow bounds how many stored turns are sent to the model per
// call. The store keeps the full transcript; only the prompt is windowed.
const HistoryWindow = 10

// Window returns the trailing n messages of a transcript.
func Window(messages []chat.Message, n int) []chat.Message {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

// ChatSystemPrompt assembles the grounded system prompt for the chat
// endpoint: role, dataset snapshot and top records as labeled sections.
func ChatSystemPrompt(stats dataset.Stats, topTracks []dataset.AfroTrack) string {
	var b strings.Builder

	b.WriteString("You are Afrowave, an analyst for the African music and entertainment market. ")
	b.WriteString("Answer using the reference data below. Be specific, cite numbers when they help, and stay concise.\n\n")

	writeStatsSection(&b, stats)
	writeTopTracksSection(&b, topTracks)

	return b.String()
}

// TrendsPrompt asks the model for market trend insights over the top
// tracks and aggregates.
func TrendsPrompt(stats dataset.Stats, topTracks []dataset.AfroTrack, limit int) string {
	var b strings.Builder

	writeStatsSection(&b, stats)
	writeTopTracksSection(&b, topTracks)

	fmt.Fprintf(&b, "Based on this data, list the %d most significant current Afrobeats market trends. ", limit)
	b.WriteString("Return them as a numbered list, one trend per line, each a single sentence.\n")

	return b.String()
}

// ArtistPrompt asks for an artist outlook grounded on their rows.
func ArtistPrompt(artist string, tracks []dataset.AfroTrack, youtube []dataset.YouTubeTrack) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== ARTIST: %s ===\n", artist)
	b.WriteString("Streaming records:\n")
	for _, track := range tracks {
		fmt.Fprintf(&b, "- %q (%s, %d): %d streams, energy %.2f, danceability %.2f, tempo %.0f\n",
			track.Title, track.Genre, track.Year, track.Streams, track.Energy, track.Danceability, track.Tempo)
	}
	if len(youtube) > 0 {
		b.WriteString("YouTube records:\n")
		for _, track := range youtube {
			fmt.Fprintf(&b, "- %q (%d): %d views, %d likes\n", track.Title, track.Year, track.Views, track.Likes)
		}
	}

	fmt.Fprintf(&b, "\nWrite a short analysis of %s's market position and a one-paragraph outlook. ", artist)
	b.WriteString("Then list 3 numbered recommendations, one per line.\n")

	return b.String()
}

// GenreTrendsPrompt asks for a narrative over a feature-filtered slice.
func GenreTrendsPrompt(tracks []dataset.AfroTrack, limit int) string {
	var b strings.Builder

	b.WriteString("=== FILTERED TRACKS ===\n")
	for _, track := range tracks {
		fmt.Fprintf(&b, "- %s - %q (%s): %d streams, energy %.2f, danceability %.2f, tempo %.0f\n",
			track.Artist, track.Title, track.Genre, track.Streams, track.Energy, track.Danceability, track.Tempo)
	}

	fmt.Fprintf(&b, "\nThese tracks share an audio-feature profile. Identify up to %d genre-level trends ", limit)
	b.WriteString("they suggest, as a numbered list with one trend per line.\n")

	return b.String()
}

func writeStatsSection(b *strings.Builder, stats dataset.Stats) {
	b.WriteString("=== MARKET SNAPSHOT ===\n")
	fmt.Fprintf(b, "Tracked Afrobeats tracks: %d (total streams %d, avg energy %.2f, avg danceability %.2f, avg tempo %.0f)\n",
		stats.AfroTrackCount, stats.TotalStreams, stats.AvgEnergy, stats.AvgDanceability, stats.AvgTempo)
	fmt.Fprintf(b, "Tracked YouTube tracks: %d (total views %d)\n", stats.YouTubeTrackCount, stats.TotalViews)
	fmt.Fprintf(b, "Concerts: %d shows, %d attendees, %.0f gate revenue\n",
		stats.ConcertCount, stats.TotalAttendance, stats.TotalGateRevenue)
	fmt.Fprintf(b, "Top streamed artist: %s; most viewed on YouTube: %s\n", stats.TopStreamedArtist, stats.MostViewedYouTuber)
	fmt.Fprintf(b, "Top merch category: %s (%.0f revenue)\n\n", stats.TopSalesCategory, stats.TopSalesRevenue)
}

func writeTopTracksSection(b *strings.Builder, tracks []dataset.AfroTrack) {
	if len(tracks) == 0 {
		return
	}
	b.WriteString("=== TOP TRACKS BY STREAMS ===\n")
	for i, track := range tracks {
		fmt.Fprintf(b, "%d. %s - %q: %d streams\n", i+1, track.Artist, track.Title, track.Streams)
	}
	b.WriteString("\n")
}
