package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Ledger
	DataFile string

	// CSV uploads
	UploadDir      string
	MaxUploadBytes int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:      getEnv("PORT", "8080"),
		DataFile:  getEnv("DATA_FILE", "expenses.csv"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	// Parse the upload size cap, default 10 MiB
	sizeStr := getEnv("MAX_UPLOAD_BYTES", "10485760")
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_BYTES value '%s', falling back to 10485760\n", sizeStr)
		size = 10 << 20
	}
	config.MaxUploadBytes = size

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
