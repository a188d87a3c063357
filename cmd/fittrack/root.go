package main

import (
	"fmt"

	"fittrack/internal/config"
	"fittrack/internal/store/sqlstore"

	"github.com/spf13/cobra"
)

var (
	cfg      config.Config
	dbDriver string
	dbConn   string
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal fitness tracker",
	Long: `Fittrack records workouts, meals and wearable readings and serves them
over a JSON API and a small HTML interface.

QUICK START:

  $ fittrack migrate               # Create the tables
  $ fittrack seed --days 14        # Fill in two weeks of sample data
  $ fittrack serve                 # Serve on HTTP_ADDRESS (default :5000)
  $ fittrack list wearables        # Show the latest readings

DATABASE:

  SQLite is used by default (./fittrack.db). Set DB_DRIVER=postgres and
  DB_CONN to a postgres connection string, or pass --db-driver/--db-conn.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("db-driver") {
			cfg.DBDriver = dbDriver
		}
		if cmd.Flags().Changed("db-conn") {
			cfg.DBConn = dbConn
		}
		return nil
	},
	RunE: runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openStore() (*sqlstore.SQLStore, error) {
	s, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "database driver: sqlite3 or postgres (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbConn, "db-conn", "", "database connection string (overrides DB_CONN)")
}
