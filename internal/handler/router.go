package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/afrowave/api/internal/handler/auth"
	"github.com/afrowave/api/internal/handler/chatws"
	dataHandler "github.com/afrowave/api/internal/handler/data"
	eventsHandler "github.com/afrowave/api/internal/handler/events"
	exploreHandler "github.com/afrowave/api/internal/handler/explore"
	predictHandler "github.com/afrowave/api/internal/handler/predict"
	promptHandler "github.com/afrowave/api/internal/handler/prompt"
	settingsHandler "github.com/afrowave/api/internal/handler/settings"
	streamHandler "github.com/afrowave/api/internal/handler/stream"
	"github.com/afrowave/api/internal/middleware"
	"github.com/afrowave/api/internal/repository"
	aiService "github.com/afrowave/api/internal/service/ai"
	authService "github.com/afrowave/api/internal/service/auth"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
	eventsService "github.com/afrowave/api/internal/service/events"
	"github.com/afrowave/api/internal/service/insight"
)

// Deps carries every collaborator the HTTP surface needs; the router holds
// no state of its own.
type Deps struct {
	Users    repository.Users
	Auth     *authService.Service
	Sessions *chatService.Service
	AI       *aiService.Service
	Data     *dataset.Provider
	Insights *insight.Service
	Scraper  *eventsService.Service
}

// NewRouter wires HTTP routes to core services. Everything except the auth
// endpoints sits behind the bearer-token gate.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Route("/auth", authHandler.New(deps.Auth).RegisterRoutes)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Auth(deps.Auth))

		predict := predictHandler.New(deps.Insights, deps.Sessions)
		protected.Route("/predict", func(pr chi.Router) {
			predict.RegisterRoutes(pr)
			pr.Get("/chat/stream", streamHandler.New(deps.AI, deps.Sessions, deps.Data).ServeHTTP)
			pr.Get("/chat/live", chatws.New(deps.Insights).ServeHTTP)
		})

		protected.Route("/explore", exploreHandler.New(deps.Users).RegisterRoutes)
		protected.Route("/settings", settingsHandler.New(deps.Auth).RegisterRoutes)
		protected.Route("/events", eventsHandler.New(deps.Scraper).RegisterRoutes)
		protected.Route("/api", dataHandler.New(deps.Data).RegisterRoutes)
		protected.Route("/ai", promptHandler.New(deps.AI).RegisterRoutes)
	})

	return r
}
