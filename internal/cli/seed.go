package cli

import (
	"fmt"
	"os"

	"devops-quiz/internal/domain"
	pgloader "devops-quiz/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd imports a JSON question file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "seed <questions.json>",
		Short: "Import questions from a JSON file into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			questions, err := domain.DecodeQuestions(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := pgloader.SeedQuestions(cmd.Context(), db, questions, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "delete existing questions first")
	return cmd
}
