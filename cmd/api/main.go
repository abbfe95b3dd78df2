package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/afrowave/api/internal/config"
	"github.com/afrowave/api/internal/handler"
	"github.com/afrowave/api/internal/repository"
	aiService "github.com/afrowave/api/internal/service/ai"
	authService "github.com/afrowave/api/internal/service/auth"
	chatService "github.com/afrowave/api/internal/service/chat"
	"github.com/afrowave/api/internal/service/dataset"
	eventsService "github.com/afrowave/api/internal/service/events"
	"github.com/afrowave/api/internal/service/insight"
)

const datasetDir = "data"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, users, err := repository.Connect(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to document store: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	data, err := dataset.Load(datasetDir)
	if err != nil {
		log.Fatalf("failed to load datasets: %v", err)
	}
	log.Printf("datasets loaded: %d afro tracks, %d youtube tracks", data.Stats().AfroTrackCount, data.Stats().YouTubeTrackCount)

	aiSvc, err := aiService.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}

	authSvc := authService.NewService(users, cfg.Auth)
	sessions := chatService.NewService()
	insights := insight.NewService(data, aiSvc, sessions)
	scraper := eventsService.NewService()

	router := handler.NewRouter(handler.Deps{
		Users:    users,
		Auth:     authSvc,
		Sessions: sessions,
		AI:       aiSvc,
		Data:     data,
		Insights: insights,
		Scraper:  scraper,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Afrowave API listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
