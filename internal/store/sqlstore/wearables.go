package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

const selectWearable = "SELECT id, COALESCE(heart_rate, 0), COALESCE(steps, 0), COALESCE(recorded_at, '') FROM wearables"

// ListWearables returns readings newest first. A limit of zero or less means no limit.
func (s *SQLStore) ListWearables(ctx context.Context, limit int) ([]models.Wearable, error) {
	query := selectWearable + " ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list wearables: %w", err)
	}
	defer rows.Close()

	wearables := []models.Wearable{}
	for rows.Next() {
		var w models.Wearable
		if err := rows.Scan(&w.ID, &w.HeartRate, &w.Steps, &w.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan wearable: %w", err)
		}
		wearables = append(wearables, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wearables: %w", err)
	}
	return wearables, nil
}

func (s *SQLStore) CreateWearable(ctx context.Context, w models.Wearable) (int64, error) {
	id, err := s.insert(ctx, "INSERT INTO wearables (heart_rate, steps, recorded_at) VALUES (?, ?, ?)", w.HeartRate, w.Steps, w.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("create wearable: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetWearable(ctx context.Context, id int64) (*models.Wearable, error) {
	var w models.Wearable
	err := s.db.QueryRowContext(ctx, s.rebind(selectWearable+" WHERE id = ?"), id).Scan(&w.ID, &w.HeartRate, &w.Steps, &w.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wearable: %w", err)
	}
	return &w, nil
}

func (s *SQLStore) UpdateWearable(ctx context.Context, w models.Wearable) error {
	err := s.exec(ctx, "UPDATE wearables SET heart_rate = ?, steps = ?, recorded_at = ? WHERE id = ?", w.HeartRate, w.Steps, w.RecordedAt, w.ID)
	if err != nil {
		return fmt.Errorf("update wearable: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteWearable(ctx context.Context, id int64) error {
	if err := s.exec(ctx, "DELETE FROM wearables WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete wearable: %w", err)
	}
	return nil
}
