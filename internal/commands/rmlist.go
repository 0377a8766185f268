package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string       { return "rmlist" }
func (c *RmListCmd) Aliases() []string  { return nil }
func (c *RmListCmd) Synopsis() string   { return "Delete a list" }
func (c *RmListCmd) Usage() string      { return "todoctl rmlist [--force] <list-name>" }
func (c *RmListCmd) NeedsService() bool { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := resolveListByName(ctx, svc, name)
	if err != nil {
		return reportError(errOut, err)
	}

	// Refuse to drop open tasks unless --force
	if !c.force {
		tasks, err := svc.TasksOfList(ctx, list.ID)
		if err != nil {
			return reportError(errOut, err)
		}
		for _, t := range tasks {
			if !t.Done {
				fmt.Fprintln(errOut, "error: list not empty (use --force)")
				return exitcode.UserError
			}
		}
	}

	deleted, err := svc.DeleteList(ctx, list.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	if !deleted {
		fmt.Fprintln(errOut, "error: backend error: list was not deleted")
		return exitcode.BackendError
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
