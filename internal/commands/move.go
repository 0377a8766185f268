package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd moves a task to a 1-based position in its list.
type MoveCmd struct{}

func (c *MoveCmd) Name() string       { return "move" }
func (c *MoveCmd) Aliases() []string  { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string   { return "Change the position of a task" }
func (c *MoveCmd) Usage() string      { return "todoctl move <ref> <position>" }
func (c *MoveCmd) NeedsService() bool { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and position required")
		return exitcode.UserError
	}
	pos, err := parsePosition(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	list, task, err := resolveTask(ctx, svc, args[:1])
	if err != nil {
		return reportError(errOut, err)
	}

	tasks, err := sortedTasks(ctx, svc, list.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	// Renumber the whole list so the moved task does not tie with a neighbour
	for _, t := range reorderTasks(tasks, task.ID, pos-1) {
		if t.Order == orderOf(tasks, t.ID) {
			continue
		}
		if _, err := svc.UpdateTaskOrder(ctx, t.ID, t.Order); err != nil {
			return reportError(errOut, err)
		}
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}

// reorderTasks moves the task with id to index pos (clamped) and numbers
// every task by its new index.
func reorderTasks(tasks []service.Task, id string, pos int) []service.Task {
	var moved service.Task
	rest := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id {
			moved = t
			continue
		}
		rest = append(rest, t)
	}
	if pos > len(rest) {
		pos = len(rest)
	}

	out := make([]service.Task, 0, len(tasks))
	out = append(out, rest[:pos]...)
	out = append(out, moved)
	out = append(out, rest[pos:]...)
	for i := range out {
		out[i].Order = i
	}
	return out
}

func orderOf(tasks []service.Task, id string) int {
	for _, t := range tasks {
		if t.ID == id {
			return t.Order
		}
	}
	return -1
}

// parsePosition parses a 1-based position argument.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position: %s", s)
	}
	return n, nil
}
