package configs

import (
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads .env in local development only; hosted environments
// inject ENV directly.
func loadDotEnv() error {
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}
	return godotenv.Load()
}
