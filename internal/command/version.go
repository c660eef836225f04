package command

import (
	"context"

	"github.com/aldertree/beacon/internal/version"
)

// VersionCommand implements /version — shows the build version.
type VersionCommand struct{}

func (c *VersionCommand) Name() string        { return "version" }
func (c *VersionCommand) Description() string { return "Show version" }

func (c *VersionCommand) Execute(_ context.Context, _ string, _ Env) Result {
	return Result{Content: "beacon " + version.Version}
}
