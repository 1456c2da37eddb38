package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bidboard/internal/board"
	"bidboard/internal/feed"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Board      board.Config
	Feed       feed.Config
	DataPath   string
	LogDir     string
	CachePath  string
	SummaryTTL time.Duration
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// Prefer the binary directory's .env, then fall back to the working
	// directory for go run / development.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("BOARD_REQUEST_DELAY_SECONDS", "2"))
	ttlHours, _ := strconv.Atoi(getEnv("SUMMARY_TTL_HOURS", "24"))

	cfg := &AppConfig{
		Board: board.Config{
			BaseURL:      getEnv("BOARD_URL", ""),
			BoardID:      getEnv("BOARD_ID", ""),
			Token:        getEnv("BOARD_TOKEN", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		Feed: feed.Config{
			BaseURL: getEnv("FEED_URL", ""),
			Token:   getEnv("FEED_TOKEN", ""),
		},
		DataPath:   dataPath,
		LogDir:     logDir,
		CachePath:  filepath.Join(dataPath, "cache", "summaries.db"),
		SummaryTTL: time.Duration(ttlHours) * time.Hour,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
