package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ridewatch/internal/bot"
	"ridewatch/internal/config"
	"ridewatch/internal/database"
	"ridewatch/internal/engine"
	"ridewatch/internal/geocode"
	"ridewatch/internal/handler"
	"ridewatch/internal/notify"
	"ridewatch/internal/source"
	"ridewatch/internal/store"
	"ridewatch/internal/worker"
)

func main() {
	cfg := config.New()

	if cfg.BotToken == "" {
		slog.Error("bot token is not set")
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	// Filter store: flat JSON file by default, Postgres when a URI is given.
	var filterStore store.FilterStore = store.NewFileStore(cfg.FiltersPath)
	if cfg.DatabaseURI != "" {
		db, err := database.NewDB(cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		filterStore = store.NewPostgresStore(db)
	}

	// Services
	resolver := geocode.NewClient(cfg.GeocoderAddress, cfg.GeocoderCountry)
	notifier := notify.NewTelegramNotifier(api)
	matchEngine := engine.New(filterStore, resolver, notifier)
	queue := source.NewQueue(cfg.QueueSize)

	// Workers
	orderWorker := worker.NewOrderWorker(matchEngine, queue)
	filterBot := bot.New(api, filterStore)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/api/messages", handler.IngestMessageHandler(queue))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go orderWorker.Start(ctx)
	go filterBot.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting ingest server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker and bot
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
