package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"ngim/config"
	"ngim/database"
	"ngim/engine"
	"ngim/handlers"
	"ngim/routes"
	"ngim/store"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	config.Load()
	cfg := config.AppConfig

	// Pick the snapshot source: Postgres when DATABASE_URL is set,
	// otherwise the CSV data directory.
	var loadSnapshot func() (*store.Dataset, error)
	if cfg.DatabaseURL != "" {
		database.Connect(cfg.DatabaseURL)
		defer database.Close()
		loadSnapshot = func() (*store.Dataset, error) {
			return store.LoadPostgres(context.Background(), database.GetDB())
		}
	} else {
		loadSnapshot = func() (*store.Dataset, error) {
			return store.LoadCSV(cfg.DataDir, cfg.SalesCSV, cfg.ProductsCSV)
		}
	}

	// A missing or unreadable source is fatal: refusing to start beats
	// silently serving forecasts over empty tables.
	ds, err := loadSnapshot()
	if err != nil {
		log.Fatalf("Unable to load data snapshot: %v", err)
	}

	e := engine.New(ds, engine.MiningOptions{
		MinSupport:    cfg.MinSupport,
		MinConfidence: cfg.MinConfidence,
		MaxCombos:     cfg.MaxCombos,
	})
	handlers.SetEngine(e)
	handlers.SetLoader(loadSnapshot)

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(cfg.ListenAddr))
}
