package store

import (
	"context"
	"errors"

	"fittrack/internal/models"
)

// WearableListLimit caps the wearable listing to the most recent readings.
const WearableListLimit = 10

// ErrNotFound is returned by single-row lookups when the id does not exist.
// Updates and deletes never return it: touching a missing row is a no-op.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations
type Store interface {
	// Workouts
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	CreateWorkout(ctx context.Context, w models.Workout) (int64, error)
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	UpdateWorkout(ctx context.Context, w models.Workout) error
	DeleteWorkout(ctx context.Context, id int64) error

	// Diets
	ListDiets(ctx context.Context) ([]models.Diet, error)
	CreateDiet(ctx context.Context, d models.Diet) (int64, error)
	GetDiet(ctx context.Context, id int64) (*models.Diet, error)
	UpdateDiet(ctx context.Context, d models.Diet) error
	DeleteDiet(ctx context.Context, id int64) error

	// Wearables
	ListWearables(ctx context.Context, limit int) ([]models.Wearable, error)
	CreateWearable(ctx context.Context, w models.Wearable) (int64, error)
	GetWearable(ctx context.Context, id int64) (*models.Wearable, error)
	UpdateWearable(ctx context.Context, w models.Wearable) error
	DeleteWearable(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Close() error
}
