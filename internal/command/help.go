package command

import (
	"context"
	"fmt"
	"strings"
)

// HelpCommand implements /help — lists registered commands.
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Show available commands" }

func (c *HelpCommand) Execute(_ context.Context, _ string, env Env) Result {
	var sb strings.Builder
	sb.WriteString("**Commands**\n\n")
	if env.ListCommands != nil {
		for _, cmd := range env.ListCommands() {
			sb.WriteString(fmt.Sprintf("- /%s — %s\n", cmd.Name(), cmd.Description()))
		}
	}
	sb.WriteString("- /quit — Exit the chat\n")
	return Result{Content: strings.TrimRight(sb.String(), "\n")}
}
