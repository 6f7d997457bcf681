package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first
// successfully parsed file, returning its name. godotenv never overwrites
// variables already present in the process environment, so CI-provided
// credentials always win over local files.
func loadEnvFile() (string, error) {
	envPaths := []string{".env", ".env.local"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			return envPath, nil
		}
	}
	return "", fmt.Errorf("no .env file found")
}
