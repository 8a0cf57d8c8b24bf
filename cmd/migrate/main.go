package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/abhijitreddy-06/money-tracker/internal/config"
	"github.com/abhijitreddy-06/money-tracker/internal/storage/postgres"
)

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer store.Close()

	log.Info("Applying migrations...")
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("error applying migrations: %v", err)
	}
	log.Info("Migrations applied successfully")
}
