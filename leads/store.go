package leads

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists leads.
type Store interface {
	Insert(ctx context.Context, l Lead) (Lead, error)
	List(ctx context.Context, limit int) ([]Lead, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats summarizes the recorded leads.
type Stats struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// timeLayout is a fixed width UTC timestamp, so that text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a Store backed by the leads table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a store on a database opened with Open.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Insert validates and records l, assigning its ID and creation time.
//
// Leads are not deduplicated, the same person may submit twice.
func (s *SQLiteStore) Insert(ctx context.Context, l Lead) (Lead, error) {
	if l.Source == "" {
		l.Source = DefaultSource
	}
	if err := l.Validate(); err != nil {
		return Lead{}, err
	}
	l.ID = uuid.NewString()
	l.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, amount, source, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Email, l.Amount, l.Source, l.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

// List returns up to limit leads, newest first. A non-positive limit returns all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, amount, source, created_at FROM leads ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := make([]Lead, 0)
	for rows.Next() {
		var (
			l       Lead
			created string
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Amount, &l.Source, &created); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("lead %s has an invalid creation time %q: %w", l.ID, created, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Stats counts the leads and sums their indicated allocations.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM leads`).Scan(&st.Count, &st.TotalAmount)
	if err != nil {
		return Stats{}, fmt.Errorf("lead stats: %w", err)
	}
	return st, nil
}
