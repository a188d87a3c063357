package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

const selectWorkout = "SELECT id, COALESCE(type, ''), COALESCE(duration, 0), COALESCE(calories, 0) FROM workouts"

func (s *SQLStore) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(selectWorkout+" ORDER BY id DESC"))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Type, &w.Duration, &w.Calories); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

func (s *SQLStore) CreateWorkout(ctx context.Context, w models.Workout) (int64, error) {
	id, err := s.insert(ctx, "INSERT INTO workouts (type, duration, calories) VALUES (?, ?, ?)", w.Type, w.Duration, w.Calories)
	if err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var w models.Workout
	err := s.db.QueryRowContext(ctx, s.rebind(selectWorkout+" WHERE id = ?"), id).Scan(&w.ID, &w.Type, &w.Duration, &w.Calories)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return &w, nil
}

// UpdateWorkout overwrites every column of the row. A missing id updates nothing.
func (s *SQLStore) UpdateWorkout(ctx context.Context, w models.Workout) error {
	err := s.exec(ctx, "UPDATE workouts SET type = ?, duration = ?, calories = ? WHERE id = ?", w.Type, w.Duration, w.Calories, w.ID)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteWorkout(ctx context.Context, id int64) error {
	if err := s.exec(ctx, "DELETE FROM workouts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}
