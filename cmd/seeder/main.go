package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/config"
	"github.com/romanzzaa/petrol-price-bot/internal/infrastructure/database"
	"github.com/romanzzaa/petrol-price-bot/internal/logging"
	"github.com/romanzzaa/petrol-price-bot/internal/usecase"
)

// Сидер для локальной разработки: создает таблицу subscribers и
// подписывает тестовый чат, чтобы сразу видеть рассылку.
func main() {
	chatID := flag.Int64("chat", 0, "telegram chat id to subscribe (0 - only create schema)")
	name := flag.String("name", "test_driver", "display name for the seeded subscriber")
	flag.Parse()

	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.App.Env != "local" {
		log.Fatal("Seeder allowed only in local environment")
	}

	logger := logging.NewWithWriter(log.Writer(), cfg.Log.Level)

	// 2. Database
	db, err := database.NewConnection(database.Config{
		Host: cfg.Database.Host, Port: cfg.Database.Port, User: cfg.Database.User,
		Password: cfg.Database.Password, DBName: cfg.Database.DBName, SSLMode: cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	repo := database.NewSubscriberRepository(db, logger)
	ctx := context.Background()

	// --- ШАГ 1: Схема ---
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *chatID == 0 {
		return
	}

	// --- ШАГ 2: Подписчик ---
	registry := usecase.NewRegistry(repo, logger)
	inserted, err := registry.Add(ctx, *chatID, *name, time.Now())
	if err != nil {
		log.Fatalf("Failed to seed subscriber: %v", err)
	}
	if !inserted {
		log.Printf("[Seeder] Subscriber %d already exists. Skipping.", *chatID)
	} else {
		log.Printf("✅ Subscriber %d created", *chatID)
	}

	n, err := repo.Count(ctx)
	if err == nil {
		log.Printf("[Seeder] Total subscribers: %d", n)
	}
}
