package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
	"github.com/aldertree/beacon/internal/stats"
)

// StatsCommand implements /stats — shows the current session counters.
type StatsCommand struct{}

func (c *StatsCommand) Name() string        { return "stats" }
func (c *StatsCommand) Description() string { return "Show session stats" }

func (c *StatsCommand) Execute(_ context.Context, _ string, env Env) Result {
	if env.Session == nil {
		return Result{Content: "No session."}
	}
	return Result{Content: FormatSnapshot(env.Session.Stats().Snapshot())}
}

// FormatSnapshot renders a stats snapshot as markdown. Modes and decisions
// are listed in a fixed order so output is deterministic.
func FormatSnapshot(snap stats.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("**Session Stats**\n\n")
	sb.WriteString(fmt.Sprintf("- Turns: %d\n", snap.Turns))

	if !snap.HasData() {
		sb.WriteString("\nNothing recorded yet.")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("- Avg input length: %.1f runes\n", snap.AvgInputRunes()))
	sb.WriteString(fmt.Sprintf("- Avg output length: %.1f runes\n", snap.AvgOutputRunes()))
	sb.WriteString(fmt.Sprintf("- Estimated tokens: %d\n", snap.TotalTokens))
	sb.WriteString(fmt.Sprintf("- Latency: last %.1fms, avg %.1fms, min %.1fms, max %.1fms\n",
		snap.Latency.LastMs, snap.Latency.AvgEMAMs, snap.Latency.MinMs, snap.Latency.MaxMs))
	if !snap.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- Updated: `%s`\n", snap.UpdatedAt.Format(time.RFC3339)))
	}

	sb.WriteString("\n**Modes:**\n\n")
	for _, mode := range engine.Modes() {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", mode, snap.PerMode[mode]))
	}

	sb.WriteString("\n**Decisions:**\n\n")
	for _, kind := range policy.Kinds() {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", kind, snap.PerDecision[kind]))
	}

	return strings.TrimRight(sb.String(), "\n")
}
