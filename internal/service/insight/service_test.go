package insight_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	chatModel "github.com/afrowave/api/internal/model/chat"
	model "github.com/afrowave/api/internal/model/dataset"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
	"github.com/afrowave/api/internal/service/insight"
)

// stubGenerator returns canned text and records what it was asked.
type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastHistory []chatModel.Message
	lastQuery   string
}

func (s *stubGenerator) Generate(_ context.Context, system string, history []chatModel.Message, query string) (string, error) {
	s.lastSystem = system
	s.lastHistory = history
	s.lastQuery = query
	return s.response, s.err
}

func (s *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return s.Generate(ctx, "", nil, prompt)
}

func testData() *dataset.Provider {
	return dataset.NewProvider(
		[]model.AfroTrack{
			{Artist: "Rema", Title: "Calm Down", Genre: "afropop", Streams: 900, Energy: 0.8, Danceability: 0.84, Tempo: 107},
			{Artist: "Tems", Title: "Free Mind", Genre: "alte", Streams: 400, Energy: 0.52, Danceability: 0.61, Tempo: 94},
		},
		[]model.YouTubeTrack{{Artist: "Rema", Title: "Calm Down Video", Views: 700}},
		nil, nil, nil,
	)
}

func newService(gen *stubGenerator) (*insight.Service, *chatService.Service) {
	sessions := chatService.NewService()
	return insight.NewService(testData(), gen, sessions), sessions
}

func TestTrendsReshapesNumberedLines(t *testing.T) {
	gen := &stubGenerator{response: "Intro text.\n1. Amapiano keeps growing.\n2) Crossover features rise.\n- Streaming dominates.\n"}
	svc, _ := newService(gen)

	trends, err := svc.Trends(context.Background(), 3, false)
	if err != nil {
		t.Fatalf("Trends err: %v", err)
	}

	want := []string{"Amapiano keeps growing.", "Crossover features rise.", "Streaming dominates."}
	if len(trends.Insights) != len(want) {
		t.Fatalf("insights = %v", trends.Insights)
	}
	for i, insightLine := range want {
		if trends.Insights[i] != insightLine {
			t.Fatalf("insights[%d] = %q, want %q", i, trends.Insights[i], insightLine)
		}
	}
	if trends.RawResponse != "" {
		t.Fatal("raw response must be omitted unless requested")
	}
}

func TestTrendsIncludesRawWhenAsked(t *testing.T) {
	gen := &stubGenerator{response: "1. Something."}
	svc, _ := newService(gen)

	trends, err := svc.Trends(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("Trends err: %v", err)
	}
	if trends.RawResponse != "1. Something." {
		t.Fatalf("rawResponse = %q", trends.RawResponse)
	}
}

func TestTrendsPropagatesUpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("gateway exploded")}
	svc, _ := newService(gen)

	if _, err := svc.Trends(context.Background(), 5, false); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestArtistNotFound(t *testing.T) {
	gen := &stubGenerator{response: "analysis"}
	svc, _ := newService(gen)

	if _, err := svc.Artist(context.Background(), "Unknown Person"); !errors.Is(err, insight.ErrArtistNotFound) {
		t.Fatalf("got %v, want ErrArtistNotFound", err)
	}

	result, err := svc.Artist(context.Background(), "rema")
	if err != nil {
		t.Fatalf("Artist err: %v", err)
	}
	if len(result.Tracks) != 1 || len(result.YouTube) != 1 {
		t.Fatalf("unexpected rows: %+v", result)
	}
}

func TestGenreTrendsNoMatches(t *testing.T) {
	gen := &stubGenerator{response: "1. x"}
	svc, _ := newService(gen)

	minEnergy := 0.99
	_, err := svc.GenreTrends(context.Background(), dataset.TrackFilter{MinEnergy: &minEnergy}, 3)
	if !errors.Is(err, insight.ErrNoMatches) {
		t.Fatalf("got %v, want ErrNoMatches", err)
	}
}

func TestChatTurn(t *testing.T) {
	gen := &stubGenerator{response: "Afrobeats trends are strong."}
	svc, sessions := newService(gen)
	ctx := context.Background()

	result, err := svc.Chat(ctx, "u1", "what are the trends?", "")
	if err != nil {
		t.Fatalf("Chat err: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if result.Message != "Afrobeats trends are strong." {
		t.Fatalf("message = %q", result.Message)
	}
	if result.Conversation.MessageCount != 2 {
		t.Fatalf("messageCount = %d, want 2", result.Conversation.MessageCount)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("expected follow-up suggestions")
	}
	if !strings.Contains(gen.lastSystem, "MARKET SNAPSHOT") {
		t.Fatal("system prompt must carry the dataset snapshot")
	}

	transcript, err := sessions.Transcript(ctx, result.SessionID, "u1")
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("stored %d messages, want 2", len(transcript))
	}
	if transcript[0].Role != chatModel.RoleUser || transcript[1].Role != chatModel.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", transcript)
	}
}

func TestChatWindowsHistory(t *testing.T) {
	gen := &stubGenerator{response: "ok"}
	svc, _ := newService(gen)
	ctx := context.Background()

	first, err := svc.Chat(ctx, "u1", "turn zero", "")
	if err != nil {
		t.Fatalf("Chat err: %v", err)
	}

	// 7 more turns -> 16 stored messages, window must cap at 10.
	for i := 0; i < 7; i++ {
		if _, err := svc.Chat(ctx, "u1", "another turn", first.SessionID); err != nil {
			t.Fatalf("Chat err: %v", err)
		}
	}

	if len(gen.lastHistory) != 10 {
		t.Fatalf("history window = %d, want 10", len(gen.lastHistory))
	}

	result, err := svc.Chat(ctx, "u1", "latest", first.SessionID)
	if err != nil {
		t.Fatalf("Chat err: %v", err)
	}
	if result.Conversation.MessageCount != 18 {
		t.Fatalf("full history not retained: %d", result.Conversation.MessageCount)
	}
}

func TestChatRequiresPrompt(t *testing.T) {
	gen := &stubGenerator{response: "ok"}
	svc, _ := newService(gen)

	if _, err := svc.Chat(context.Background(), "u1", "   ", ""); !errors.Is(err, insight.ErrPromptRequired) {
		t.Fatalf("got %v, want ErrPromptRequired", err)
	}
}
