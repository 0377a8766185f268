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
	Register(&MoveListCmd{})
}

// MoveListCmd changes the position of a list.
// By default every list is renumbered 0..n-1 around the moved one and all
// orders are sent in one batch; --only sends the moved list's order alone.
type MoveListCmd struct {
	only bool
}

// SetOnly sets the --only flag (for testing).
func (c *MoveListCmd) SetOnly(only bool) {
	c.only = only
}

func (c *MoveListCmd) Name() string       { return "movelist" }
func (c *MoveListCmd) Aliases() []string  { return nil }
func (c *MoveListCmd) Synopsis() string   { return "Change the position of a list" }
func (c *MoveListCmd) Usage() string      { return "todoctl movelist [--only] <list-name> <position>" }
func (c *MoveListCmd) NeedsService() bool { return true }

func (c *MoveListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.only, "only", false, "")
}

func (c *MoveListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list name and position required")
		return exitcode.UserError
	}
	pos, err := parsePosition(args[len(args)-1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	name := strings.Join(args[:len(args)-1], " ")

	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}
	list, err := findListByName(lists, name)
	if err != nil {
		return reportError(errOut, err)
	}

	if c.only {
		if _, err := svc.UpdateListOrder(ctx, list.ID, pos-1); err != nil {
			return reportError(errOut, err)
		}
		printOK(out, cfg.Quiet)
		return exitcode.Success
	}

	report, err := svc.UpdateAllListOrders(ctx, reorder(lists, list.ID, pos-1))
	if err != nil {
		for _, f := range report.Failed {
			fmt.Fprintf(errOut, "error: list %s: %s\n", listLabel(lists, f.ListID), f.Message)
		}
		if len(report.Failed) > 0 {
			return exitcode.BackendError
		}
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}

// reorder moves the list with id to index pos (clamped) and renumbers
// every list by its new index.
func reorder(lists []service.TaskList, id string, pos int) []service.TaskList {
	var moved service.TaskList
	rest := make([]service.TaskList, 0, len(lists))
	for _, l := range lists {
		if l.ID == id {
			moved = l
			continue
		}
		rest = append(rest, l)
	}
	if pos > len(rest) {
		pos = len(rest)
	}

	out := make([]service.TaskList, 0, len(lists))
	out = append(out, rest[:pos]...)
	out = append(out, moved)
	out = append(out, rest[pos:]...)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// listLabel returns the name of the list with id, or the id itself.
func listLabel(lists []service.TaskList, id string) string {
	for _, l := range lists {
		if l.ID == id {
			return l.Name
		}
	}
	return id
}
