package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/romanzzaa/petrol-price-bot/internal/bot"
	"github.com/romanzzaa/petrol-price-bot/internal/config"
	"github.com/romanzzaa/petrol-price-bot/internal/domain"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/cache"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/database"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/fuelprices"
	"github.com/romanzzaa/petrol-price-bot/internal/logging"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
	"github.com/romanzzaa/petrol-price-bot/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, logCloser := logging.New(cfg.Log.Level, cfg.Log.File)
	defer logCloser.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, storeCloser, err := newSubscriberStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init subscriber storage",
			slog.String("backend", cfg.Storage.Backend),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storeCloser.Close()

	tgBot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error("failed to init telegram bot", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tgBot.Debug = cfg.Telegram.Debug
	logger.Info("Telegram bot authorized", slog.String("username", tgBot.Self.UserName))

	transport := bot.NewTelegram(tgBot, logger.With("component", "telegram"))

	registry := usecase.NewRegistry(store, logger.With("component", "registry"))
	dispatcher := usecase.NewDispatcher(transport, logger.With("component", "dispatcher"))

	monitor := usecase.NewPriceMonitor(
		fuelprices.NewClient(cfg.Source.Timeout),
		fuelprices.NewExtractor(cfg.Source.CardSelector, cfg.Source.PriceSelector),
		registry,
		dispatcher,
		usecase.Source{
			URL:     cfg.Source.URL,
			Headers: map[string]string{"User-Agent": cfg.Source.UserAgent},
		},
		logger.With("component", "monitor"),
	)

	router := bot.NewRouter(registry, monitor, transport, logger.With("component", "router"))

	scheduler := worker.NewScheduler(cfg.Monitor.Interval, func(ctx context.Context) {
		monitor.RunCycle(ctx)
	}, logger.With("component", "scheduler"))

	logger.Info("Starting bot...",
		slog.String("env", cfg.App.Env),
		slog.String("source", cfg.Source.URL),
		slog.String("storage", cfg.Storage.Backend))

	go scheduler.Run(ctx)
	go transport.Start(ctx, router)

	<-ctx.Done()
	logger.Info("Bot stopped gracefully")
}

func newSubscriberStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.SubscriberStore, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return cache.NewRedisSubscriberStore(client), client, nil

	default:
		db, err := database.NewConnection(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, nil, err
		}

		repo := database.NewSubscriberRepository(db, logger.With("component", "subscribers"))
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if n, err := repo.Count(ctx); err == nil {
			logger.Info("Subscribers loaded", slog.Int("count", n))
		}
		return repo, db, nil
	}
}
