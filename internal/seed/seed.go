package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store"
)

var sampleWorkouts = []struct {
	kind       string
	kcalPerMin int
}{
	{"running", 10},
	{"cycling", 8},
	{"swimming", 9},
	{"yoga", 4},
	{"rowing", 8},
	{"strength training", 6},
	{"hiking", 7},
	{"walking", 4},
}

var sampleMeals = []string{
	"Oatmeal with berries",
	"Greek yogurt and granola",
	"Chicken salad",
	"Lentil soup",
	"Salmon with rice",
	"Turkey sandwich",
	"Protein shake",
	"Veggie stir fry",
	"Steak and potatoes",
	"Tuna pasta",
}

// Result counts the records inserted by Seed.
type Result struct {
	Workouts  int
	Diets     int
	Wearables int
}

// Seed fills the store with sample records for the past days, ending at now.
// Each day gets zero or one workout, two to four meals and a morning and
// evening wearable reading. A fixed rng gives a repeatable data set.
func Seed(ctx context.Context, s store.Store, days int, now time.Time, rng *rand.Rand) (Result, error) {
	var res Result
	if days <= 0 {
		return res, nil
	}

	start := now.AddDate(0, 0, -days+1)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)

		if rng.Intn(3) > 0 {
			w := sampleWorkouts[rng.Intn(len(sampleWorkouts))]
			duration := 15 + rng.Intn(61)
			if _, err := s.CreateWorkout(ctx, models.Workout{
				Type:     w.kind,
				Duration: duration,
				Calories: duration * w.kcalPerMin,
			}); err != nil {
				return res, fmt.Errorf("seed workout: %w", err)
			}
			res.Workouts++
		}

		meals := 2 + rng.Intn(3)
		for j := 0; j < meals; j++ {
			if _, err := s.CreateDiet(ctx, models.Diet{
				Meal:     sampleMeals[rng.Intn(len(sampleMeals))],
				Calories: 250 + rng.Intn(551),
				Protein:  5 + rng.Intn(46),
			}); err != nil {
				return res, fmt.Errorf("seed diet: %w", err)
			}
			res.Diets++
		}

		for _, hour := range []int{7, 21} {
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, day.Location())
			if _, err := s.CreateWearable(ctx, models.Wearable{
				HeartRate:  55 + rng.Intn(40),
				Steps:      rng.Intn(6000) + (hour/12)*6000,
				RecordedAt: at.Format(models.RecordedAtLayout),
			}); err != nil {
				return res, fmt.Errorf("seed wearable: %w", err)
			}
			res.Wearables++
		}
	}
	return res, nil
}
