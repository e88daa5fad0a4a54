package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token       string
	APIKey      string
	DBPath      string
	MetricsAddr string
	Location    *time.Location
}

func loadConfig() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Token = os.Getenv("TELEGRAM_TOKEN")
	if cfg.Token == "" {
		return nil, errors.New("TELEGRAM_TOKEN must be set")
	}

	cfg.APIKey = os.Getenv("API_KEY")
	cfg.DBPath = getenvDefault("DB_PATH", "/tmp/badger")
	cfg.MetricsAddr = getenvDefault("METRICS_ADDR", "127.0.0.1:9123")

	tzName := getenvDefault("TZ", "Asia/Tbilisi")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
