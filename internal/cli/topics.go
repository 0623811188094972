package cli

import (
	"fmt"

	"devops-quiz/internal/app"
	"github.com/spf13/cobra"
)

// NewTopicsCmd prints the topics of the configured question bank.
func NewTopicsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List quiz topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			d, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer d.close()

			topics, err := app.NewQuizService(d.sessions, d.questions).Topics(cmd.Context())
			if err != nil {
				return err
			}
			for _, topic := range topics {
				fmt.Fprintln(cmd.OutOrStdout(), topic)
			}
			return nil
		},
	}
}
