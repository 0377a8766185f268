package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&CreateListCmd{})
}

// CreateListCmd implements the createlist command.
type CreateListCmd struct{}

func (c *CreateListCmd) Name() string       { return "createlist" }
func (c *CreateListCmd) Aliases() []string  { return []string{"addlist"} }
func (c *CreateListCmd) Synopsis() string   { return "Create a new list" }
func (c *CreateListCmd) Usage() string      { return "todoctl createlist <list-name>" }
func (c *CreateListCmd) NeedsService() bool { return true }

func (c *CreateListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	lists, err := sortedLists(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}

	// Names are matched case-insensitively, so refuse near-duplicates too
	if _, err := findListByName(lists, name); err == nil || errors.Is(err, ErrAmbiguousList) {
		fmt.Fprintf(errOut, "error: list already exists: %s\n", name)
		return exitcode.UserError
	}

	// New lists go last
	order := 0
	for _, l := range lists {
		if l.Order >= order {
			order = l.Order + 1
		}
	}

	if _, err := svc.CreateList(ctx, service.TaskList{Name: name, Order: order}); err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
