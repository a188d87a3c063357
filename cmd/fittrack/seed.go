package main

import (
	"math/rand"
	"time"

	"fittrack/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedDays  int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample workouts, meals and wearable readings",
	Long: `Insert sample data for the past --days days, ending today.

The same --seed value always produces the same records.

EXAMPLES:

  fittrack seed                 # 30 days of sample data
  fittrack seed --days 7        # one week
  fittrack seed --seed 99       # a different data set`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		res, err := seed.Seed(ctx, st, seedDays, time.Now(), rand.New(rand.NewSource(seedValue)))
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Seeded %d workouts, %d meals, %d wearable readings\n",
			res.Workouts, res.Diets, res.Wearables)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 30, "number of days to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "random seed")
	rootCmd.AddCommand(seedCmd)
}
