package cli

import (
	"fmt"

	"devops-quiz/internal/app"
	"devops-quiz/internal/transport/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewPlayCmd runs an interactive quiz on the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
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

			engine := app.NewEngine(engineOptions(cfg)...)
			if err := engine.Load(cmd.Context(), d.source); err != nil {
				// the topic view still renders and tells the player what went wrong
				d.log.Error("question load failed", zap.Error(err))
				fmt.Fprintf(cmd.OutOrStdout(), "! %v\n", err)
			}
			return terminal.NewSession(engine, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}
