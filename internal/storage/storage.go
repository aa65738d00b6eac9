// Package storage provides a file-based recipe store used by the import
// and export CLI commands for seeding and backing up the catalog.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mealweek/internal/recipe"
)

// RecipeStore reads and writes recipes as individual JSON files.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

func (s *RecipeStore) path(recipeID string) string {
	return filepath.Join(s.basePath, sanitizeID(recipeID)+".json")
}

// sanitizeID makes a recipe id safe for filenames.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, id)
}

// Save writes one recipe to a file named after its id.
func (s *RecipeStore) Save(rec recipe.Recipe) error {
	if rec.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves one recipe by id.
func (s *RecipeStore) Load(recipeID string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}

// ListAll reads every recipe JSON file in the store.
func (s *RecipeStore) ListAll() ([]recipe.Recipe, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob recipe files: %w", err)
	}

	var recipes []recipe.Recipe
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", match, err)
		}
		var rec recipe.Recipe
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", match, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Remove deletes one recipe file. Missing files are not an error.
func (s *RecipeStore) Remove(recipeID string) error {
	if err := os.Remove(s.path(recipeID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove recipe file: %w", err)
	}
	return nil
}
