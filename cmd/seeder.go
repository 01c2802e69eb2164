package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/datastore"
	"github.com/frahmantamala/employee-board/internal/simulator"
	"github.com/frahmantamala/employee-board/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Load the demo boards, posts, comments and employees into the live database. Employee 2 is granted admin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Backend.Mode != internal.BackendModeLive {
			return fmt.Errorf("seed needs backend.mode %q; the simulator seeds itself", internal.BackendModeLive)
		}
		setupLogger(cfg)
		lg := logger.LoggerWrapper()

		ctx := context.Background()
		repos, err := datastore.Open(ctx, cfg, lg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer repos.Close()

		if clearData {
			if err := repos.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}
			lg.Info("existing board data cleared")
		}

		fixtures := simulator.DefaultFixtures()
		if err := repos.Seed(ctx, fixtures); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		lg.Info("seed finished",
			"categories", len(fixtures.Categories),
			"posts", len(fixtures.Posts),
			"comments", len(fixtures.Comments),
			"employees", len(fixtures.Employees))
		return nil
	},
}
