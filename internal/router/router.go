package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/abhijitreddy-06/money-tracker/internal/http"
)

type Router struct {
	AuthHandler   *handlers.AuthHandler
	LedgerHandler *handlers.LedgerHandler
	ViewHandler   *handlers.ViewHandler
	HealthHandler *handlers.HealthHandler
	AuthMW        fiber.Handler
	AuthLimit     fiber.Handler
	WriteLimit    fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	authLimit := orNext(r.AuthLimit)
	writeLimit := orNext(r.WriteLimit)

	if r.HealthHandler != nil {
		app.Get("/", r.HealthHandler.Root)
		app.Get("/health/db", r.HealthHandler.Database)
	}

	api := app.Group("/api")

	if r.AuthHandler != nil {
		api.Post("/register", authLimit, r.AuthHandler.Register)
		api.Post("/login", authLimit, r.AuthHandler.Login)
	}

	if r.LedgerHandler != nil {
		api.Post("/balance", r.AuthMW, writeLimit, r.LedgerHandler.SetBalance)
		api.Get("/check-balance", r.AuthMW, r.LedgerHandler.CheckBalance)

		api.Post("/spend", r.AuthMW, writeLimit, r.LedgerHandler.Spend)
		api.Get("/spend", r.AuthMW, r.LedgerHandler.ListSpends)
		api.Post("/lend", r.AuthMW, writeLimit, r.LedgerHandler.Lend)
		api.Get("/lend", r.AuthMW, r.LedgerHandler.ListLends)
		api.Post("/borrow", r.AuthMW, writeLimit, r.LedgerHandler.Borrow)
		api.Get("/borrow", r.AuthMW, r.LedgerHandler.ListBorrows)
		api.Post("/deposit", r.AuthMW, writeLimit, r.LedgerHandler.Deposit)
		api.Get("/deposit", r.AuthMW, r.LedgerHandler.ListDeposits)
	}

	if r.ViewHandler != nil {
		api.Get("/home", r.AuthMW, r.ViewHandler.Home)
		api.Get("/history", r.AuthMW, r.ViewHandler.GetHistory)
		api.Get("/history/statement", r.AuthMW, r.ViewHandler.Statement)
		api.Get("/profile", r.AuthMW, r.ViewHandler.GetProfile)
	}
}

func orNext(h fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}
	return passThrough
}

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}
