package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var nowFunc = time.Now

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseCredit atomically checks the monthly quota and deducts one credit.
// It resets the counter to allowance when last_reset_month is behind the current month.
// Returns ErrQuotaExhausted when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseCredit(ctx context.Context, uid string, allowance int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			credits_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE credits_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR credits_remaining > 0)
	`, currentMonth(), allowance, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// Refund gives back one credit, used when generation fails after the credit was taken.
func (s *Store) Refund(ctx context.Context, uid string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET credits_remaining = LEAST(credits_remaining + 1, $1)
		WHERE uid = $2 AND last_reset_month = $3
	`, allowance, uid, currentMonth())
	return err
}

// EnsureUser inserts a new ai_usage row for uid with the given allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, credits_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, allowance, currentMonth())
	return err
}

// Remaining returns the credits left this month without consuming any.
// Users without a row, or whose row is from an earlier month, have the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string, allowance int) (int, error) {
	var remaining int
	var month string
	err := s.db.QueryRow(ctx,
		`SELECT credits_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid,
	).Scan(&remaining, &month)
	if errors.Is(err, pgx.ErrNoRows) {
		return allowance, nil
	}
	if err != nil {
		return 0, err
	}
	if month < currentMonth() {
		return allowance, nil
	}
	return remaining, nil
}
