package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	DatabaseURL string
	Env         string

	// Timezone is the bot-wide default zone for day boundaries and the
	// daily report; per-user settings may override it.
	Timezone   string
	ReportTime string // "15:04", default delivery time for daily reports
}

// MustLoad reads configuration from the environment (and .env if present).
// A missing bot token or database URL is a fatal startup error.
func MustLoad() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	cfg := Config{
		BotToken:    bt,
		DatabaseURL: dsn,
		Env:         getEnv("APP_ENV", "development"),
		Timezone:    getEnv("TZ", "Asia/Kolkata"),
		ReportTime:  getEnv("REPORT_TIME", "06:00"),
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Fatalf("invalid TZ %q: %v", cfg.Timezone, err)
	}
	if _, err := time.Parse("15:04", cfg.ReportTime); err != nil {
		log.Fatalf("invalid REPORT_TIME %q: %v", cfg.ReportTime, err)
	}

	return cfg
}

// Location returns the configured default zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
