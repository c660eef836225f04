package commands

import (
	"github.com/spf13/cobra"

	"github.com/aldertree/beacon/internal/config"
)

var logLevelOverride string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beacon",
		Short: "Beacon - Deterministic offline companion",
		Long:  `Beacon is a deterministic offline companion with a built-in safety gate and session stats.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride, cmd.Name() == "chat")
		},
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewChatCmd(),
		NewStatusCmd(),
		NewVersionCmd(),
	)

	return cmd
}
