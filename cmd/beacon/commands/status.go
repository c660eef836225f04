package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aldertree/beacon/internal/config"
	"github.com/aldertree/beacon/internal/version"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Print(formatStatus(cfg))
			return nil
		},
	}
}

func formatStatus(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("Beacon Status\n\n")
	sb.WriteString(fmt.Sprintf("- Version: %s\n", version.Version))
	sb.WriteString(fmt.Sprintf("- Config: %s\n", config.ConfigPath()))
	sb.WriteString(fmt.Sprintf("- Assistant name: %s\n", cfg.Engine.AssistantName))
	sb.WriteString(fmt.Sprintf("- Max output chars: %d\n", cfg.Engine.MaxOutputChars))
	sb.WriteString(fmt.Sprintf("- Input thresholds: short %d, long %d\n",
		cfg.Engine.ShortInputThreshold, cfg.Engine.LongInputThreshold))

	strictMode := "off"
	if cfg.Policy.Strict {
		strictMode = "on"
	}
	sb.WriteString(fmt.Sprintf("- Strict policy: %s\n", strictMode))

	rules := "built-in"
	if strings.TrimSpace(cfg.Policy.RulesFile) != "" {
		rules = cfg.Policy.RulesFile
	}
	sb.WriteString(fmt.Sprintf("- Policy rules: %s\n", rules))
	return sb.String()
}
