package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository handles persistence of shopping-list items, one row per
// ingredient per user+week with the sources stored as JSON.
type Repository struct {
	db DBTX
}

// NewRepository creates a new shopping list repository.
func NewRepository(d DBTX) *Repository {
	return &Repository{db: d}
}

// WithTx returns a Repository bound to the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx}
}

// Load retrieves the shopping list for a user and week in insertion order.
func (r *Repository) Load(ctx context.Context, userID, weekID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ingredient_name, sources, created_at, updated_at
		FROM shopping_items
		WHERE user_id = ? AND week_id = ?
		ORDER BY rowid
	`, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var sourcesJSON string
		if err := rows.Scan(&it.ID, &it.IngredientName, &sourcesJSON, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		if err := json.Unmarshal([]byte(sourcesJSON), &it.Sources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sources for item %s: %w", it.ID, err)
		}
		it.UserID = userID
		items = append(items, it)
	}
	return items, rows.Err()
}

// Replace swaps the persisted list for a user and week with the given
// items. Callers run it inside the same transaction as the plan write so
// concurrent syncs cannot interleave.
func (r *Repository) Replace(ctx context.Context, userID, weekID string, items []Item) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_items WHERE user_id = ? AND week_id = ?`,
		userID, weekID,
	); err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}

	for _, it := range items {
		sourcesJSON, err := json.Marshal(it.Sources)
		if err != nil {
			return fmt.Errorf("failed to marshal sources for %s: %w", it.IngredientName, err)
		}
		createdAt := it.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO shopping_items
				(id, user_id, week_id, ingredient_name, sources, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, it.ID, userID, weekID, it.IngredientName, string(sourcesJSON), createdAt, it.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert shopping item %s: %w", it.IngredientName, err)
		}
	}
	return nil
}

// Get retrieves a single item by id. Returns (nil, nil) when not found.
func (r *Repository) Get(ctx context.Context, userID, itemID string) (*Item, error) {
	var it Item
	var sourcesJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, ingredient_name, sources, created_at, updated_at
		FROM shopping_items
		WHERE user_id = ? AND id = ?
	`, userID, itemID).Scan(&it.ID, &it.IngredientName, &sourcesJSON, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping item: %w", err)
	}
	if err := json.Unmarshal([]byte(sourcesJSON), &it.Sources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sources for item %s: %w", it.ID, err)
	}
	it.UserID = userID
	return &it, nil
}

// UpdateSources overwrites one item's sources, bumping updated_at.
func (r *Repository) UpdateSources(ctx context.Context, userID, itemID string, sources []Source) error {
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE shopping_items SET sources = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`, string(sourcesJSON), time.Now().UTC(), userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to update shopping item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("shopping item %s not found", itemID)
	}
	return nil
}

// Delete removes one item.
func (r *Repository) Delete(ctx context.Context, userID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_items WHERE user_id = ? AND id = ?`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	return nil
}
