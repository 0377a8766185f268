package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints every field of one task.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show task details" }
func (c *ShowCmd) Usage() string      { return "todoctl show <ref>" }
func (c *ShowCmd) NeedsService() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, ref, err := resolveTask(ctx, svc, args)
	if err != nil {
		return reportError(errOut, err)
	}

	// Fetch the task itself so fields the list endpoint trims are shown
	task, err := svc.GetTask(ctx, ref.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTaskDetail(out, list, *task)
	return exitcode.Success
}
