package plan

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

// Repository persists one weekly plan per user+week as a JSON blob.
type Repository struct {
	db DBTX
}

// NewRepository creates a new plan Repository.
func NewRepository(d DBTX) *Repository {
	return &Repository{db: d}
}

// WithTx returns a Repository bound to the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx}
}

// Load retrieves the plan for a user and week. Returns (nil, nil) when no
// plan has been saved yet.
func (r *Repository) Load(ctx context.Context, userID, weekID string) (*WeeklyPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT plan_data FROM meal_plans WHERE user_id = ? AND week_id = ?`,
		userID, weekID,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No plan for this week
		}
		return nil, fmt.Errorf("failed to get plan for user %s week %s: %w", userID, weekID, err)
	}

	var p WeeklyPlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}
	normalizeShape(&p)
	return &p, nil
}

// Save upserts the plan for a user and week.
func (r *Repository) Save(ctx context.Context, userID, weekID string, p *WeeklyPlan) error {
	planJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (user_id, week_id, plan_data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, week_id) DO UPDATE SET
			plan_data = excluded.plan_data,
			updated_at = excluded.updated_at
	`, userID, weekID, string(planJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// normalizeShape repairs plans persisted by older clients: missing days are
// filled in fixed Monday-first order and nil meal maps are initialized, so
// the rest of the code never guards against a short week.
func normalizeShape(p *WeeklyPlan) {
	byDay := map[string]DayPlan{}
	for _, d := range p.Days {
		byDay[d.Day] = d
	}
	days := make([]DayPlan, 0, len(Days))
	for _, name := range Days {
		d, ok := byDay[name]
		if !ok {
			d = DayPlan{Day: name}
		}
		if d.Meals == nil {
			d.Meals = map[MealType][]SlotItem{}
		}
		days = append(days, d)
	}
	p.Days = days
}
