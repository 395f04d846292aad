package recency

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists MRU lists in the recent_patient table so the list
// survives restarts and is shared across portal instances.
type PGStore struct {
	pool  *pgxpool.Pool
	limit int
}

func NewPGStore(pool *pgxpool.Pool, limit int) *PGStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &PGStore{pool: pool, limit: limit}
}

func (s *PGStore) Touch(ctx context.Context, viewerID string, e Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin touch: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO recent_patient (viewer_id, patient_id, name, age, avatar, last_viewed)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (viewer_id, patient_id) DO UPDATE SET
			name = EXCLUDED.name, age = EXCLUDED.age, avatar = EXCLUDED.avatar,
			last_viewed = EXCLUDED.last_viewed`,
		viewerID, e.PatientID, e.Name, e.Age, e.Avatar, e.LastViewed)
	if err != nil {
		return fmt.Errorf("touch recent patient: %w", err)
	}

	// Evict everything beyond the newest N for this viewer.
	_, err = tx.Exec(ctx, `
		DELETE FROM recent_patient
		WHERE viewer_id = $1 AND patient_id NOT IN (
			SELECT patient_id FROM recent_patient
			WHERE viewer_id = $1
			ORDER BY last_viewed DESC
			LIMIT $2
		)`, viewerID, s.limit)
	if err != nil {
		return fmt.Errorf("evict recent patients: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PGStore) List(ctx context.Context, viewerID string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT patient_id, name, age, avatar, last_viewed
		FROM recent_patient
		WHERE viewer_id = $1
		ORDER BY last_viewed DESC
		LIMIT $2`, viewerID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("list recent patients: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PatientID, &e.Name, &e.Age, &e.Avatar, &e.LastViewed); err != nil {
			return nil, fmt.Errorf("scan recent patient: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent patients: %w", err)
	}
	return out, nil
}

func (s *PGStore) Clear(ctx context.Context, viewerID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM recent_patient WHERE viewer_id = $1`, viewerID)
	if err != nil {
		return fmt.Errorf("clear recent patients: %w", err)
	}
	return nil
}
