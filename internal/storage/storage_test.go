package storage

import (
	"os"
	"path/filepath"
	"testing"

	"mealweek/internal/recipe"
)

func TestRecipeStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "storage_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewRecipeStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create RecipeStore: %v", err)
	}

	rec := recipe.Recipe{
		ID:    "test-recipe-123",
		Title: "Test Recipe",
		Ingredients: []recipe.Ingredient{
			{Amount: "1", Unit: "cup", Name: "testing"},
		},
		Instructions: "Write a test.",
		Tags:         []string{"go", "test"},
	}

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}

		filePath := filepath.Join(tempDir, rec.ID+".json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := store.Load(rec.ID)
		if err != nil {
			t.Fatalf("Failed to load recipe: %v", err)
		}
		if loaded.Title != rec.Title {
			t.Errorf("Expected title '%s', got '%s'", rec.Title, loaded.Title)
		}
		if len(loaded.Ingredients) != 1 || loaded.Ingredients[0].Name != "testing" {
			t.Errorf("Ingredients not round-tripped: %+v", loaded.Ingredients)
		}
	})

	t.Run("ListAll", func(t *testing.T) {
		all, err := store.ListAll()
		if err != nil {
			t.Fatalf("Failed to list recipes: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("Expected 1 recipe, got %d", len(all))
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		if _, err := store.Load("non-existent-recipe"); err == nil {
			t.Fatal("Expected an error for loading non-existent recipe, got nil")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := store.Remove(rec.ID); err != nil {
			t.Fatalf("Failed to remove recipe: %v", err)
		}
		if err := store.Remove(rec.ID); err != nil {
			t.Errorf("Removing a missing file should not error, got %v", err)
		}
	})

	t.Run("SaveWithoutID", func(t *testing.T) {
		if err := store.Save(recipe.Recipe{Title: "No ID"}); err == nil {
			t.Fatal("Expected an error for recipe without id, got nil")
		}
	})
}
