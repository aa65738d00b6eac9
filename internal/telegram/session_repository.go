package telegram

import (
	"context"
	"database/sql"
	"time"
)

// Session remembers which week a chat is currently working on, so /list and
// /plan don't need a week argument every time. Sessions expire so a stale
// chat falls back to the current week.
type Session struct {
	UserID    string
	WeekID    string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// SessionRepository provides access to chat session persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// SetWeek records the active week for a user, refreshing the TTL.
func (sr *SessionRepository) SetWeek(ctx context.Context, userID, weekID string, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := sr.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (user_id, week_id, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			week_id = excluded.week_id,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, userID, weekID, now.Add(ttl), now)
	return err
}

// GetWeek returns the active week for a user, or "" when no unexpired
// session exists.
func (sr *SessionRepository) GetWeek(ctx context.Context, userID string) (string, error) {
	var weekID string
	err := sr.db.QueryRowContext(ctx, `
		SELECT week_id FROM chat_sessions
		WHERE user_id = ? AND expires_at > ?
	`, userID, time.Now().UTC()).Scan(&weekID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return weekID, nil
}

// CleanupExpired removes all expired sessions (optional maintenance task).
func (sr *SessionRepository) CleanupExpired(ctx context.Context) error {
	_, err := sr.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
