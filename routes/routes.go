package routes

import (
	"ngim/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HandleHealth)
	api.Get("/products", handlers.HandleListProducts)

	// --- Recommendation & forecasting ---
	rec := api.Group("/recommendations")
	rec.Post("/", handlers.HandleGetRecommendation)
	rec.Get("/top", handlers.HandleTopForecast)
	rec.Get("/combos", handlers.HandleMineCombos)
	rec.Post("/combos/refresh", handlers.HandleRefreshCombos)

	// --- Data management ---
	api.Post("/data/refresh", handlers.HandleRefreshData)
}
