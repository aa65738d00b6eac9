package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("MEALWEEK_DB_PATH", "data/test.db")
		setEnv("MEALWEEK_JWT_SECRET", "secret")
		os.Unsetenv("MEALWEEK_LISTEN_ADDR")
		os.Unsetenv("TELEGRAM_ALLOWED_USER_IDS")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/test.db" {
			t.Errorf("Expected DatabasePath 'data/test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.JWTSecret != "secret" {
			t.Errorf("Expected JWTSecret 'secret', got '%s'", cfg.JWTSecret)
		}
		if cfg.ListenAddr != ":8080" {
			t.Errorf("Expected default ListenAddr ':8080', got '%s'", cfg.ListenAddr)
		}
	})

	t.Run("MissingDBPath", func(t *testing.T) {
		setEnv("MEALWEEK_JWT_SECRET", "secret")
		os.Unsetenv("MEALWEEK_DB_PATH")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing MEALWEEK_DB_PATH, got nil")
		}
		expectedError := "MEALWEEK_DB_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		setEnv("MEALWEEK_DB_PATH", "data/test.db")
		os.Unsetenv("MEALWEEK_JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing MEALWEEK_JWT_SECRET, got nil")
		}
	})

	t.Run("AllowedUserIDs", func(t *testing.T) {
		setEnv("MEALWEEK_DB_PATH", "data/test.db")
		setEnv("MEALWEEK_JWT_SECRET", "secret")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[1] != 456 {
			t.Errorf("Expected [123 456], got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("BadAllowedUserIDs", func(t *testing.T) {
		setEnv("MEALWEEK_DB_PATH", "data/test.db")
		setEnv("MEALWEEK_JWT_SECRET", "secret")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for malformed user id list, got nil")
		}
	})
}
