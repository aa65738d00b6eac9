package metrics

import (
	"context"
	"database/sql"
	"time"
)

// SyncRun records metadata for a single shopping-list sync execution.
type SyncRun struct {
	UserID      string
	WeekID      string
	TriggeredBy string
	ItemCount   int
	SourceCount int
	LatencyMS   int64
	Timestamp   time.Time
}

// Store handles persistence of sync metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a sync run to the database.
func (s *Store) Record(m SyncRun) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO sync_runs
			(user_id, week_id, triggered_by, item_count, source_count, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.UserID, m.WeekID, m.TriggeredBy, m.ItemCount, m.SourceCount, m.LatencyMS, ts)
	return err
}

// DailyUsage represents sync totals for a single day.
type DailyUsage struct {
	Date       string
	Runs       int
	TotalItems int
	AvgLatency float64
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT date(timestamp) AS day, COUNT(*), SUM(item_count), AVG(latency_ms)
		FROM sync_runs
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var items sql.NullFloat64
		var latency sql.NullFloat64
		if err := rows.Scan(&u.Date, &u.Runs, &items, &latency); err != nil {
			return nil, err
		}
		if items.Valid {
			u.TotalItems = int(items.Float64)
		}
		if latency.Valid {
			u.AvgLatency = latency.Float64
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(context.Background(),
		`DELETE FROM sync_runs WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
