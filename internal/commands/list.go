package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoctl` (no args) and `todoctl list <list-name>`.
type ListCmd struct {
	open bool
}

// SetOpenOnly hides completed tasks (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todoctl list [--open] [<list-name>]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return c.listAll(ctx, cfg, svc, out, errOut)
	}
	return c.listOne(ctx, svc, strings.Join(args, " "), out, errOut)
}

// listAll prints every list in order with its lettered tasks.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(lists) > maxLetters {
		fmt.Fprintf(errOut, "error: too many lists (max %d)\n", maxLetters)
		return exitcode.UserError
	}

	hasAnyTasks := false
	for _, ll := range letterLists(lists) {
		tasks, err := sortedTasks(ctx, svc, ll.List.ID)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to fetch list: %s: %v\n", ll.List.Name, err)
			return exitcode.BackendError
		}

		output.FormatListHeader(out, ll.Letter, ll.List.Name)
		for i, task := range tasks {
			if c.open && task.Done {
				continue
			}
			output.FormatTaskWithLetter(out, ll.Letter, i+1, task)
			hasAnyTasks = true
		}
	}

	if !hasAnyTasks && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// listOne prints the tasks of one list (todoctl list <name>).
func (c *ListCmd) listOne(ctx context.Context, svc service.Service, name string, out, errOut io.Writer) int {
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}
	list, err := findListByName(lists, name)
	if err != nil {
		return reportError(errOut, err)
	}

	tasks, err := sortedTasks(ctx, svc, list.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	// Print the same aN references as the full listing; a bare N always
	// means the first list. Lists past z have no letter to print.
	letter := letterOf(lists, list.ID)
	output.FormatListHeader(out, letter, list.Name)
	for i, task := range tasks {
		if c.open && task.Done {
			continue
		}
		if letter == 0 {
			output.FormatTask(out, i+1, task)
			continue
		}
		output.FormatTaskWithLetter(out, letter, i+1, task)
	}
	return exitcode.Success
}
