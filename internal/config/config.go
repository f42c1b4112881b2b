// Package config loads the .env file and the Viper configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/autocat/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, once per process. It reports the file it loaded,
// or an empty string when none was found.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	var loaded string
	once.Do(func() {
		loaded = loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
	return loaded
}

func loadEnvFile(logger logging.Logger, candidates ...string) string {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return ""
		}
		logger.WithField(logging.FieldInputFile, envFile).Debug("Loaded environment variables")
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
