package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/missiondeck/internal/adapters/games"
	httpadapter "github.com/randomtoy/missiondeck/internal/adapters/http"
	"github.com/randomtoy/missiondeck/internal/adapters/llm/openrouter"
	"github.com/randomtoy/missiondeck/internal/app"
	"github.com/randomtoy/missiondeck/internal/config"
	"github.com/randomtoy/missiondeck/internal/domain"
	"github.com/randomtoy/missiondeck/internal/ports"
)

// stdRNG delegates to math/rand (auto-seeded since Go 1.20).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.Intn(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	gameStore := games.NewEmbeddedStore(domain.GameID(cfg.DefaultGame))
	if cfg.GamesDir != "" {
		gameStore = games.NewStore(os.DirFS(cfg.GamesDir), ".", domain.GameID(cfg.DefaultGame))
	}
	// Rule tables are validated up front so a bad file fails the boot, not a request.
	if err := gameStore.Load(); err != nil {
		logger.Error("failed to load games", "error", err)
		os.Exit(1)
	}

	var narrator ports.Narrator
	if cfg.BriefingsEnabled() {
		narrator = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		)
	} else {
		logger.Info("OPENROUTER_API_KEY not set, briefings disabled")
	}

	svc := app.NewMissionService(gameStore, narrator, stdRNG{}, cfg.BaseURL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
