package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/bodhiforge/fintrack-ai-sub000/docs"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/config"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/currency"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/database"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense"
	expensesplit "github.com/bodhiforge/fintrack-ai-sub000/internal/expense/split"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/group"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/notification"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/settlement"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/user"
	"github.com/bodhiforge/fintrack-ai-sub000/pkg/logging"
	"github.com/bodhiforge/fintrack-ai-sub000/pkg/metrics"
	mw "github.com/bodhiforge/fintrack-ai-sub000/pkg/middleware"
)

// @title        fintrack API
// @version      1.0
// @description  Group expense tracking with per-currency balances and greedy settlement planning.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready")

	// Conversion rates are display-only configuration; fall back to the
	// built-in table when no file is configured.
	rates := currency.DefaultTable()
	if cfg.RatesPath != "" {
		rates, err = currency.Load(cfg.RatesPath)
		if err != nil {
			slog.Error("Failed to load rate table", "path", cfg.RatesPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Rate table loaded", "path", cfg.RatesPath, "anchor", rates.Anchor)
	}

	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Notification feature (in-DB inbox, written by expenses and payments)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature (split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature (balances, plans, recorded payments)
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, expenseRepo, groupRepo, rates, notificationService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(mw.TestUserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
