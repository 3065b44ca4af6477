package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port               int
	MongoURI           string
	MongoDB            string
	JWTKey             string
	Debug              bool
	DispatchWebhookURL string
	// EnrichmentUnitCost is the price per unique enriched contact, in BRL.
	// Billing constant, kept configurable on purpose.
	EnrichmentUnitCost float64
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	unitCost, err := strconv.ParseFloat(getEnv("ENRICHMENT_UNIT_COST", "0.30"), 64)
	if err != nil {
		unitCost = 0.30
	}

	return &Config{
		Port:               port,
		MongoURI:           getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/zattar"),
		MongoDB:            getEnv("MONGO_DB", "zattar"),
		JWTKey:             getEnv("JWT_KEY", "your-secret-key"), // replace in production
		Debug:              getEnv("GIN_MODE", "debug") == "debug",
		DispatchWebhookURL: getEnv("DISPATCH_WEBHOOK_URL", "https://webhooks.mysellers.com.br/webhook/4b23e7f6-ad8c-4ab1-b809-disparo-interface"),
		EnrichmentUnitCost: unitCost,
	}
}

// getEnv returns the environment variable value, or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
