package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

const selectDiet = "SELECT id, COALESCE(meal, ''), COALESCE(calories, 0), COALESCE(protein, 0) FROM diets"

func (s *SQLStore) ListDiets(ctx context.Context) ([]models.Diet, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(selectDiet+" ORDER BY id DESC"))
	if err != nil {
		return nil, fmt.Errorf("list diets: %w", err)
	}
	defer rows.Close()

	diets := []models.Diet{}
	for rows.Next() {
		var d models.Diet
		if err := rows.Scan(&d.ID, &d.Meal, &d.Calories, &d.Protein); err != nil {
			return nil, fmt.Errorf("scan diet: %w", err)
		}
		diets = append(diets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list diets: %w", err)
	}
	return diets, nil
}

func (s *SQLStore) CreateDiet(ctx context.Context, d models.Diet) (int64, error) {
	id, err := s.insert(ctx, "INSERT INTO diets (meal, calories, protein) VALUES (?, ?, ?)", d.Meal, d.Calories, d.Protein)
	if err != nil {
		return 0, fmt.Errorf("create diet: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetDiet(ctx context.Context, id int64) (*models.Diet, error) {
	var d models.Diet
	err := s.db.QueryRowContext(ctx, s.rebind(selectDiet+" WHERE id = ?"), id).Scan(&d.ID, &d.Meal, &d.Calories, &d.Protein)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get diet: %w", err)
	}
	return &d, nil
}

func (s *SQLStore) UpdateDiet(ctx context.Context, d models.Diet) error {
	err := s.exec(ctx, "UPDATE diets SET meal = ?, calories = ?, protein = ? WHERE id = ?", d.Meal, d.Calories, d.Protein, d.ID)
	if err != nil {
		return fmt.Errorf("update diet: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteDiet(ctx context.Context, id int64) error {
	if err := s.exec(ctx, "DELETE FROM diets WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete diet: %w", err)
	}
	return nil
}
