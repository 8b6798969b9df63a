package rest

import (
	"database/sql"
	"log/slog"
	"strings"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/hanifn/expense-log/internal/category"
	"github.com/hanifn/expense-log/internal/expense"
	"github.com/hanifn/expense-log/internal/transport/middleware"
	"github.com/rs/cors"
)

// RegisterAllRoutes mounts the API under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, expenseHandler *expense.Handler, categoryHandler *category.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: splitOrigins(allowedOrigins),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Trace-ID"},
	})

	router.Use(corsHandler.Handler)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if expenseHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Get("/", expenseHandler.GetExpenses)
				er.Get("/view", expenseHandler.GetExpenseView)
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Patch("/{id}", expenseHandler.UpdateExpense)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
			})
		}

		if categoryHandler != nil {
			r.Route("/categories", func(cr chi.Router) {
				cr.Get("/", categoryHandler.GetCategories)
				cr.Get("/palette", categoryHandler.GetPalette)
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Get("/{id}", categoryHandler.GetCategory)
				cr.Patch("/{id}", categoryHandler.UpdateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
				cr.Get("/{id}/usage", categoryHandler.GetCategoryUsage)
			})
		}
	})
}

func splitOrigins(allowed string) []string {
	if allowed == "" {
		return []string{"*"}
	}
	parts := strings.Split(allowed, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
