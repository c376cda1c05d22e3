package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

// PostgresStore keeps trips in the trips table with the plan as JSONB.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *Trip) error {
	prefs, plan, err := encodeDocs(t)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trips (id, user_id, preferences, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(t.ID), t.UserID, prefs, plan, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, preferences, plan, created_at, updated_at
		FROM trips
		WHERE id = $1`, string(id),
	)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, preferences, plan, created_at, updated_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, t *Trip) error {
	prefs, plan, err := encodeDocs(t)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET preferences = $2, plan = $3, updated_at = $4
		WHERE id = $1`,
		string(t.ID), prefs, plan, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeDocs(t *Trip) ([]byte, []byte, error) {
	prefs, err := json.Marshal(t.Preferences)
	if err != nil {
		return nil, nil, fmt.Errorf("encode preferences: %w", err)
	}
	plan, err := json.Marshal(t.Plan)
	if err != nil {
		return nil, nil, fmt.Errorf("encode plan: %w", err)
	}
	return prefs, plan, nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var id string
	var prefs, plan []byte
	if err := row.Scan(&id, &t.UserID, &prefs, &plan, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = types.ID(id)
	if err := json.Unmarshal(prefs, &t.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(plan, &doc); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	t.Plan = tripplan.TripPlan(doc)
	return &t, nil
}
