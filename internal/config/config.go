package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	Environment string
	AppId       string

	MongoURI    string
	MongoDBName string
	PostgresDSN string

	DummyJSONURL   string
	ExchangeAPIURL string
	HTTPTimeout    time.Duration

	// FallbackCOPRate is applied by synchronization when the live
	// exchange-rate service is unavailable.
	FallbackCOPRate decimal.Decimal

	// SyncSchedule is a cron expression for periodic synchronization.
	// Empty disables the scheduler.
	SyncSchedule string
	SyncLimit    int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		AppId:           getEnv("APP_ID", "go-shop"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB", "go-shop"),
		PostgresDSN:     getEnv("POSTGRES_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=go_shop sslmode=disable"),
		DummyJSONURL:    getEnv("DUMMYJSON_URL", "https://dummyjson.com/products"),
		ExchangeAPIURL:  getEnv("EXCHANGE_API_URL", "https://api.exchangerate-api.com/v4"),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		FallbackCOPRate: getEnvDecimal("FALLBACK_COP_RATE", "4000"),
		SyncSchedule:    getEnv("SYNC_SCHEDULE", ""),
		SyncLimit:       getEnvInt("SYNC_LIMIT", 30),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Invalid decimal for %s, using default %s", key, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
