package insight

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/afrowave/api/internal/analysis/suggest"
	chatModel "github.com/afrowave/api/internal/model/chat"
	datasetModel "github.com/afrowave/api/internal/model/dataset"
	"github.com/afrowave/api/internal/service/ai"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
)

var (
	ErrArtistNotFound = errors.New("artist not found in dataset")
	ErrNoMatches      = errors.New("no tracks match the filter")
	ErrPromptRequired = errors.New("prompt is required")
)

const defaultTrendLimit = 5

// Service turns dataset snapshots and conversation state into prompts for
// the generative gateway and reshapes the text that comes back.
type Service struct {
	data     *dataset.Provider
	gen      ai.Generator
	sessions *chatService.Service
}

// NewService wires the prediction surface.
func NewService(data *dataset.Provider, gen ai.Generator, sessions *chatService.Service) *Service {
	return &Service{data: data, gen: gen, sessions: sessions}
}

// QuickStats is the precomputed, model-free summary.
type QuickStats struct {
	Stats      datasetModel.Stats          `json:"stats"`
	TopAfro    []datasetModel.AfroTrack    `json:"topAfroTracks"`
	TopYouTube []datasetModel.YouTubeTrack `json:"topYoutubeTracks"`
}

// QuickStats returns dataset aggregates without touching the gateway.
func (s *Service) QuickStats() QuickStats {
	return QuickStats{
		Stats:      s.data.Stats(),
		TopAfro:    s.data.TopAfro(5),
		TopYouTube: s.data.TopYouTube(5),
	}
}

// Trends is the reshaped market-trend response.
type Trends struct {
	Insights    []string `json:"insights"`
	RawResponse string   `json:"rawResponse,omitempty"`
	BasedOn     int      `json:"basedOnTracks"`
}

// Trends asks the gateway for market trends over the top tracks.
func (s *Service) Trends(ctx context.Context, limit int, includeRaw bool) (Trends, error) {
	if limit <= 0 {
		limit = defaultTrendLimit
	}

	top := s.data.TopAfro(limit * 2)
	prompt := ai.TrendsPrompt(s.data.Stats(), top, limit)

	raw, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		return Trends{}, fmt.Errorf("trend generation failed: %w", err)
	}

	result := Trends{
		Insights: extractListItems(raw, limit),
		BasedOn:  len(top),
	}
	if includeRaw {
		result.RawResponse = raw
	}
	return result, nil
}

// Artist is the per-artist analysis response.
type Artist struct {
	Artist   string                      `json:"artist"`
	Analysis string                      `json:"analysis"`
	Tracks   []datasetModel.AfroTrack    `json:"tracks"`
	YouTube  []datasetModel.YouTubeTrack `json:"youtube,omitempty"`
}

// Artist grounds an outlook on the artist's dataset rows. An artist with no
// rows at all is a not-found condition.
func (s *Service) Artist(ctx context.Context, name string) (Artist, error) {
	name = strings.TrimSpace(name)
	tracks := s.data.SearchAfro(name)
	youtube := s.data.SearchYouTube(name)
	if len(tracks) == 0 && len(youtube) == 0 {
		return Artist{}, ErrArtistNotFound
	}

	analysis, err := s.gen.Complete(ctx, ai.ArtistPrompt(name, tracks, youtube))
	if err != nil {
		return Artist{}, fmt.Errorf("artist analysis failed: %w", err)
	}

	return Artist{Artist: name, Analysis: analysis, Tracks: tracks, YouTube: youtube}, nil
}

// GenreTrends is the feature-filtered trend response.
type GenreTrends struct {
	Insights []string                 `json:"insights"`
	Matched  []datasetModel.AfroTrack `json:"matchedTracks"`
}

// GenreTrends narrates trends over a feature-filtered slice. An empty
// filter result is a not-found condition.
func (s *Service) GenreTrends(ctx context.Context, filter dataset.TrackFilter, limit int) (GenreTrends, error) {
	if limit <= 0 {
		limit = defaultTrendLimit
	}

	matched := s.data.FilterAfro(filter)
	if len(matched) == 0 {
		return GenreTrends{}, ErrNoMatches
	}

	raw, err := s.gen.Complete(ctx, ai.GenreTrendsPrompt(matched, limit))
	if err != nil {
		return GenreTrends{}, fmt.Errorf("genre trend generation failed: %w", err)
	}

	return GenreTrends{Insights: extractListItems(raw, limit), Matched: matched}, nil
}

// Conversation summarizes the session state returned with each chat turn.
type Conversation struct {
	MessageCount   int       `json:"messageCount"`
	SessionStarted time.Time `json:"sessionStarted"`
	LastActivity   time.Time `json:"lastActivity"`
}

// ChatResult is the full chat-turn response.
type ChatResult struct {
	SessionID    string       `json:"sessionId"`
	Message      string       `json:"message"`
	Conversation Conversation `json:"conversation"`
	Context      string       `json:"context"`
	Suggestions  []string     `json:"suggestions"`
}

// Chat runs one conversation turn: resolve the session, append the user
// message, prompt the model with the windowed history plus a dataset
// snapshot, append the reply and return the reshaped result.
func (s *Service) Chat(ctx context.Context, ownerID, prompt, sessionID string) (ChatResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ChatResult{}, ErrPromptRequired
	}

	session, err := s.sessions.GetOrCreate(ctx, sessionID, ownerID)
	if err != nil {
		return ChatResult{}, err
	}

	// History is windowed before the model call; the store keeps it all.
	history := ai.Window(session.Messages, ai.HistoryWindow)

	if _, err := s.sessions.Append(ctx, session.ID, chatModel.Message{
		Role:    chatModel.RoleUser,
		Content: prompt,
	}); err != nil {
		return ChatResult{}, err
	}

	topTracks := s.data.TopAfro(5)
	system := ai.ChatSystemPrompt(s.data.Stats(), topTracks)

	reply, err := s.gen.Generate(ctx, system, history, prompt)
	if err != nil {
		return ChatResult{}, fmt.Errorf("chat generation failed: %w", err)
	}

	updated, err := s.sessions.Append(ctx, session.ID, chatModel.Message{
		Role:    chatModel.RoleAssistant,
		Content: reply,
	})
	if err != nil {
		return ChatResult{}, err
	}

	return ChatResult{
		SessionID: updated.ID,
		Message:   reply,
		Conversation: Conversation{
			MessageCount:   len(updated.Messages),
			SessionStarted: updated.CreatedAt,
			LastActivity:   updated.LastActivity,
		},
		Context:     fmt.Sprintf("grounded on %d top tracks, market aggregates and the last %d turns", len(topTracks), len(history)),
		Suggestions: suggest.FollowUps(prompt, reply),
	}, nil
}

var listItemPattern = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s+)(.+)$`)

// extractListItems reshapes free-form model text into a bounded list of
// clean lines. Numbered or bulleted lines win; otherwise non-empty lines
// are taken as-is.
func extractListItems(text string, limit int) []string {
	items := make([]string, 0, limit)
	fallback := make([]string, 0, limit)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if match := listItemPattern.FindStringSubmatch(trimmed); match != nil {
			items = append(items, strings.TrimSpace(match[1]))
		} else {
			fallback = append(fallback, trimmed)
		}
	}

	if len(items) == 0 {
		items = fallback
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
