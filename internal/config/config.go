package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	JWTSecret    string
	ListenAddr   string

	// Recipe file import/export
	RecipeDir string

	// Telegram Config (optional for the API server, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; real environments set variables directly.
	}

	databasePath := os.Getenv("MEALWEEK_DB_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("MEALWEEK_DB_PATH environment variable not set")
	}

	jwtSecret := os.Getenv("MEALWEEK_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("MEALWEEK_JWT_SECRET environment variable not set")
	}

	listenAddr := os.Getenv("MEALWEEK_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	recipeDir := os.Getenv("MEALWEEK_RECIPE_DIR")
	if recipeDir == "" {
		recipeDir = "data/recipes"
	}

	cfg := &Config{
		DatabasePath: databasePath,
		JWTSecret:    jwtSecret,
		ListenAddr:   listenAddr,
		RecipeDir:    recipeDir,

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if ids := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); ids != "" {
		for _, part := range strings.Split(ids, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	if admin := os.Getenv("TELEGRAM_ADMIN_ID"); admin != "" {
		id, err := strconv.ParseInt(admin, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID %q: %w", admin, err)
		}
		cfg.AdminTelegramID = id
	}

	return cfg, nil
}
