package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/abhijitreddy-06/money-tracker/internal/auth"
	"github.com/abhijitreddy-06/money-tracker/internal/config"
	"github.com/abhijitreddy-06/money-tracker/internal/history"
	apphttp "github.com/abhijitreddy-06/money-tracker/internal/http"
	"github.com/abhijitreddy-06/money-tracker/internal/ledger"
	"github.com/abhijitreddy-06/money-tracker/internal/profile"
	"github.com/abhijitreddy-06/money-tracker/internal/router"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
	"github.com/abhijitreddy-06/money-tracker/internal/storage/postgres"
	"github.com/abhijitreddy-06/money-tracker/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(router.RequestLogger())

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			Users:     store,
			Passwords: auth.BcryptHasher{Cost: cfg.BcryptCost},
			Tokens:    tokens,
			Timeout:   cfg.RequestTimeout,
		},
		LedgerHandler: &apphttp.LedgerHandler{
			Ledger:           ledger.NewCoordinator(store),
			Records:          store,
			Timeout:          cfg.RequestTimeout,
			LegacyEmptyLists: cfg.LegacyEmptyListMessages,
		},
		ViewHandler: &apphttp.ViewHandler{
			History: history.NewAggregator(store, time.Now),
			Profile: profile.NewAggregator(store),
			Records: store,
			Timeout: cfg.RequestTimeout,
		},
		HealthHandler: &apphttp.HealthHandler{DB: store, Timeout: cfg.RequestTimeout},
		AuthMW:        tokens.Middleware(),
		AuthLimit:     router.RateLimitAuth(cfg.RateLimitAuthMax),
		WriteLimit:    router.RateLimitWrite(cfg.RateLimitWriteMax),
	}
	r.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("listening", "port", cfg.Port, "store", cfg.StoreDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorw("server stopped", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StoreDriver == config.DriverSQLite {
		lite, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	}

	pg, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}
