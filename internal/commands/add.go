package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

// dueDateLayout is the accepted --due format.
const dueDateLayout = "2006-01-02"

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName    string
	description string
	owner       string
	due         string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

// SetDetails sets description, owner and due date (for testing).
func (c *AddCmd) SetDetails(description, owner, due string) {
	c.description = description
	c.owner = owner
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todoctl add [--list <list-name>] [--desc <text>] [--owner <name>] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.owner, "owner", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	due := strings.TrimSpace(c.due)
	if due != "" {
		if _, err := time.Parse(dueDateLayout, due); err != nil {
			fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", due)
			return exitcode.UserError
		}
	}

	var list service.TaskList
	var err error
	if c.listName != "" {
		list, err = resolveListByName(ctx, svc, c.listName)
	} else {
		list, err = firstList(ctx, svc)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	// New tasks go to the end of the list
	existing, err := svc.TasksOfList(ctx, list.ID)
	if err != nil {
		return reportError(errOut, err)
	}
	order := 0
	for _, t := range existing {
		if t.Order >= order {
			order = t.Order + 1
		}
	}

	task := service.Task{
		Title:       title,
		ListID:      list.ID,
		Description: service.StringPtr(strings.TrimSpace(c.description)),
		Owner:       service.StringPtr(strings.TrimSpace(c.owner)),
		DueDate:     service.StringPtr(due),
		Order:       order,
	}
	if _, err := svc.CreateTask(ctx, task); err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
