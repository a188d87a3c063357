package sqlstore

import (
	"context"
	"fmt"
)

// Migrate creates the workouts, diets and wearables tables if they are missing.
// It is safe to run on every startup.
func (s *SQLStore) Migrate(ctx context.Context) error {
	var createWorkoutsTable, createDietsTable, createWearablesTable string

	if s.dbType == Postgres {
		createWorkoutsTable = `
		CREATE TABLE IF NOT EXISTS workouts (
			id SERIAL PRIMARY KEY,
			type TEXT,
			duration INTEGER,
			calories INTEGER
		);`

		createDietsTable = `
		CREATE TABLE IF NOT EXISTS diets (
			id SERIAL PRIMARY KEY,
			meal TEXT,
			calories INTEGER,
			protein INTEGER
		);`

		createWearablesTable = `
		CREATE TABLE IF NOT EXISTS wearables (
			id SERIAL PRIMARY KEY,
			heart_rate INTEGER,
			steps INTEGER,
			recorded_at TEXT
		);`
	} else {
		createWorkoutsTable = `
		CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT,
			duration INTEGER,
			calories INTEGER
		);`

		createDietsTable = `
		CREATE TABLE IF NOT EXISTS diets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			meal TEXT,
			calories INTEGER,
			protein INTEGER
		);`

		createWearablesTable = `
		CREATE TABLE IF NOT EXISTS wearables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			heart_rate INTEGER,
			steps INTEGER,
			recorded_at TEXT
		);`
	}

	for _, stmt := range []string{createWorkoutsTable, createDietsTable, createWearablesTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
