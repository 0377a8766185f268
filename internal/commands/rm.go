package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return nil }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "todoctl rm <ref>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	_, task, err := resolveTask(ctx, svc, args)
	if err != nil {
		return reportError(errOut, err)
	}

	deleted, err := svc.DeleteTask(ctx, task.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	if !deleted {
		fmt.Fprintln(errOut, "error: backend error: task was not deleted")
		return exitcode.BackendError
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
