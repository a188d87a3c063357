package main

import (
	"fmt"
	"io"
	"strings"

	"fittrack/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:       "list workouts|diets|wearables",
	Aliases:   []string{"ls"},
	Short:     "List recorded workouts, meals or wearable readings",
	ValidArgs: []string{"workouts", "diets", "wearables"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `List records newest first.

EXAMPLES:

  fittrack list workouts          # every workout
  fittrack list diets -n 5        # the five latest meals
  fittrack list wearables         # the 10 latest readings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		switch args[0] {
		case "workouts":
			return listWorkouts(cmd, st, out)
		case "diets":
			return listDiets(cmd, st, out)
		default:
			return listWearables(cmd, st, out)
		}
	},
}

var faint = color.New(color.Faint)

func listWorkouts(cmd *cobra.Command, st store.Store, out io.Writer) error {
	workouts, err := st.ListWorkouts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		fmt.Fprintln(out, "No workouts found.")
		return nil
	}
	for _, w := range limit(workouts, listLimit) {
		fmt.Fprintf(out, "%s %s %4d min %5d kcal\n",
			faint.Sprintf("#%-5d", w.ID), padRight(w.Type, 20), w.Duration, w.Calories)
	}
	return nil
}

func listDiets(cmd *cobra.Command, st store.Store, out io.Writer) error {
	diets, err := st.ListDiets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list diets: %w", err)
	}
	if len(diets) == 0 {
		fmt.Fprintln(out, "No meals found.")
		return nil
	}
	for _, d := range limit(diets, listLimit) {
		fmt.Fprintf(out, "%s %s %5d kcal %4d g protein\n",
			faint.Sprintf("#%-5d", d.ID), padRight(d.Meal, 28), d.Calories, d.Protein)
	}
	return nil
}

func listWearables(cmd *cobra.Command, st store.Store, out io.Writer) error {
	n := store.WearableListLimit
	if listLimit > 0 {
		n = listLimit
	}
	wearables, err := st.ListWearables(cmd.Context(), n)
	if err != nil {
		return fmt.Errorf("failed to list wearables: %w", err)
	}
	if len(wearables) == 0 {
		fmt.Fprintln(out, "No wearable readings found.")
		return nil
	}
	for _, w := range wearables {
		fmt.Fprintf(out, "%s %s %3d bpm %6d steps\n",
			faint.Sprintf("#%-5d", w.ID), faint.Sprint(w.RecordedAt), w.HeartRate, w.Steps)
	}
	return nil
}

// limit returns the first n items, or all of them when n is not positive.
func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of results (wearables default to 10)")
	rootCmd.AddCommand(listCmd)
}
