package data

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	datasetModel "github.com/afrowave/api/internal/model/dataset"
	"github.com/afrowave/api/internal/service/dataset"
)

func setupRouter() *chi.Mux {
	provider := dataset.NewProvider(
		[]datasetModel.AfroTrack{
			{Artist: "Rema", Title: "Calm Down", Streams: 900},
			{Artist: "Burna Boy", Title: "Last Last", Streams: 800},
			{Artist: "Ayra Starr", Title: "Rush", Streams: 700},
		},
		[]datasetModel.YouTubeTrack{
			{Artist: "Rema", Title: "Calm Down (Video)", Views: 500},
		},
		nil, nil, nil,
	)

	r := chi.NewRouter()
	New(provider).RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStats(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/data/stats")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats datasetModel.Stats
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if stats.AfroTrackCount != 3 {
		t.Fatalf("afro track count = %d, want 3", stats.AfroTrackCount)
	}
}

func TestTopAfroLimit(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/data/top-afro/2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body afroTracksResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.Count != 2 {
		t.Fatalf("count = %d, want 2", body.Count)
	}
	if body.Tracks[0].Artist != "Rema" {
		t.Fatalf("top track = %q, want Rema", body.Tracks[0].Artist)
	}
}

func TestTopAfroDefaultLimit(t *testing.T) {
	r := setupRouter()

	var body afroTracksResponse
	resp := get(t, r, "/data/top-afro")
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.Count != 3 {
		t.Fatalf("count = %d, want all 3", body.Count)
	}
}

func TestTopAfroInvalidLimit(t *testing.T) {
	r := setupRouter()

	if resp := get(t, r, "/data/top-afro/zero"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp := get(t, r, "/data/top-afro/0"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero limit, got %d", resp.Code)
	}
}

func TestSearchAfro(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/search/afro/burna")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body afroTracksResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.Count != 1 || body.Tracks[0].Artist != "Burna Boy" {
		t.Fatalf("unexpected result: %+v", body)
	}
}

func TestSearchUnknownArtistIs404(t *testing.T) {
	r := setupRouter()

	if resp := get(t, r, "/search/afro/nobody"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if resp := get(t, r, "/search/youtube/nobody"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
