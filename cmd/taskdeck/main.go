package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/fanzoftheone/taskdeck/db"
	"github.com/fanzoftheone/taskdeck/internal/config"
	"github.com/fanzoftheone/taskdeck/internal/handlers"
	"github.com/fanzoftheone/taskdeck/internal/identity"
	"github.com/fanzoftheone/taskdeck/internal/logger"
	"github.com/fanzoftheone/taskdeck/internal/overseer"
	"github.com/fanzoftheone/taskdeck/internal/router"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/taskops"
	"github.com/fanzoftheone/taskdeck/internal/token"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	appLogger := logger.New("taskdeck", slog.LevelInfo)

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The store must be reachable at startup; refusing to start beats
	// running degraded.
	database, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	st := store.New(database)

	tokens, err := token.New(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL, time.Now)

	if err != nil {
		log.Fatalf("Failed to build token service: %v", err)
	}

	resolver := identity.NewResolver(tokens, st)
	tasks := taskops.NewService(st, time.Now, appLogger)
	reviews := overseer.NewService(st, time.Now, appLogger)
	hub := handlers.NewHub(cfg.AllowedOrigins, appLogger)

	r := router.New(router.Deps{
		Resolver:       resolver,
		Auth:           handlers.NewAuthHandler(st, tokens, time.Now, appLogger),
		Tasks:          handlers.NewTaskHandler(tasks, hub, appLogger),
		Stats:          handlers.NewStatsHandler(tasks, time.Now, appLogger),
		Overseer:       handlers.NewOverseerHandler(reviews, appLogger),
		Activity:       handlers.NewActivityHandler(st, appLogger),
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         appLogger,
	})

	appLogger.Info("starting server", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
