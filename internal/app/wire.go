package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coinquest/engine/internal/gamestore"
	"github.com/coinquest/engine/internal/gamification"
	"github.com/coinquest/engine/internal/handler"
	"github.com/coinquest/engine/internal/storage"
	"github.com/go-chi/chi/v5"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Blobs              storage.Store
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter rehydrates both stores and assembles the chi.Router with all
// routes and middleware.
func NewRouter(ctx context.Context, deps RouterDeps) (chi.Router, error) {
	logger := deps.Logger

	// Stores
	gameStore, err := gamestore.New(ctx, deps.Blobs, logger)
	if err != nil {
		return nil, fmt.Errorf("init game store: %w", err)
	}
	learnStore, err := gamification.New(ctx, deps.Blobs, logger,
		gamification.WithGoalCheck(gameStore.HasSavingsGoal))
	if err != nil {
		return nil, fmt.Errorf("init gamification store: %w", err)
	}

	// Handlers
	gameHandler := handler.NewGameHandler(gameStore)
	learnHandler := handler.NewLearnHandler(learnStore)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	r.Get("/health", handler.HealthHandler(deps.Blobs))

	r.Route("/game", func(r chi.Router) {
		r.Get("/state", gameHandler.GetState)
		r.Post("/select", gameHandler.Select)
		r.Put("/goal", gameHandler.SetGoal)
		r.Post("/earnings", gameHandler.RecordEarnings)
		r.Post("/plays", gameHandler.RecordPlay)
		r.Post("/milestones/reevaluate", gameHandler.ReevaluateMilestones)
		r.Get("/games/{id}/status", gameHandler.Status)
		r.Get("/games/{id}/plays", gameHandler.Plays)
		r.Post("/reset", gameHandler.Reset)
	})

	r.Route("/learn", func(r chi.Router) {
		r.Get("/state", learnHandler.GetState)
		r.Post("/lessons/{id}/start", learnHandler.StartLesson)
		r.Post("/lessons/{id}/complete", learnHandler.CompleteLesson)
		r.Post("/levels/{id}/unlock", learnHandler.UnlockLevel)
		r.Post("/badges/{id}/earn", learnHandler.EarnBadge)
		r.Post("/streak/refresh", learnHandler.RefreshStreak)
		r.Post("/xp", learnHandler.AddXP)
		r.Put("/daily-goal", learnHandler.SetDailyGoal)
		r.Put("/daily-progress", learnHandler.UpdateDailyProgress)
		r.Post("/reset", learnHandler.Reset)
	})

	return r, nil
}
