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
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "todoctl done <ref>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetDone(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd reopens a completed task.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string      { return "todoctl undo <ref>" }
func (c *UndoCmd) NeedsService() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetDone(ctx, cfg, svc, args, false, out, errOut)
}

// runSetDone is the shared implementation for done and undo.
func runSetDone(ctx context.Context, cfg *config.Config, svc service.Service, args []string, done bool, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	_, task, err := resolveTask(ctx, svc, args)
	if err != nil {
		return reportError(errOut, err)
	}

	if task.Done == done {
		if !cfg.Quiet {
			if done {
				fmt.Fprintln(out, "already done")
			} else {
				fmt.Fprintln(out, "not done")
			}
		}
		return exitcode.Success
	}

	task.Done = done
	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
