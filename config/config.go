package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort    string
	AppMode    string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// External AI training/prediction service. No defaults: a gateway with
	// nowhere to forward to is misconfigured, see Validate.
	TrainConfigURL   string
	UpdateConfigURL  string
	StartTrainingURL string
	PredictorURL     string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:          getEnv("APP_PORT", "8000"),
		AppMode:          getEnv("APP_MODE", "debug"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "visiontrain"),
		DBPort:           getEnv("DB_PORT", "5432"),
		TrainConfigURL:   getEnv("TRAIN_CONFIG_URL", ""),
		UpdateConfigURL:  getEnv("UPDATE_CONFIG_URL", ""),
		StartTrainingURL: getEnv("START_TRAINING_URL", ""),
		PredictorURL:     getEnv("EXTERNAL_PREDICTOR_API", ""),
	}
}

// Validate rejects a configuration whose upstream URLs are unset, so the
// process fails at startup instead of forwarding requests to an empty URL.
func (c *Config) Validate() error {
	required := map[string]string{
		"TRAIN_CONFIG_URL":       c.TrainConfigURL,
		"UPDATE_CONFIG_URL":      c.UpdateConfigURL,
		"START_TRAINING_URL":     c.StartTrainingURL,
		"EXTERNAL_PREDICTOR_API": c.PredictorURL,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("missing required environment variable %s", key)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
