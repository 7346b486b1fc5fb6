package config

import (
	"os"
	"strconv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// DatabaseURL, when set, makes the store load its snapshot from
	// Postgres instead of the CSV data directory.
	DatabaseURL string

	// DataDir holds the CSV snapshot (sales + products files).
	DataDir     string
	SalesCSV    string
	ProductsCSV string

	// Default tunables for the combo mining engine.
	MinSupport    float64
	MinConfidence float64
	MaxCombos     int
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// Load populates AppConfig from environment variables, applying defaults
// for anything unset.
func Load() {
	AppConfig = Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataDir:       getEnv("DATA_DIR", "data"),
		SalesCSV:      getEnv("SALES_CSV", "sales.csv"),
		ProductsCSV:   getEnv("PRODUCTS_CSV", "products.csv"),
		MinSupport:    getEnvFloat("COMBO_MIN_SUPPORT", 0.01),
		MinConfidence: getEnvFloat("COMBO_MIN_CONFIDENCE", 0.10),
		MaxCombos:     getEnvInt("COMBO_MAX_COMBOS", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
