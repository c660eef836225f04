package command

import "context"

// ResetStatsCommand implements /reset_stats — zeroes the session counters.
type ResetStatsCommand struct{}

func (c *ResetStatsCommand) Name() string        { return "reset_stats" }
func (c *ResetStatsCommand) Description() string { return "Reset session stats" }

func (c *ResetStatsCommand) Execute(_ context.Context, _ string, env Env) Result {
	if env.Session == nil {
		return Result{Content: "No session."}
	}
	env.Session.Stats().Reset()
	return Result{Content: "Session stats reset."}
}
