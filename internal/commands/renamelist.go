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
	Register(&RenameListCmd{})
}

// RenameListCmd changes the name of a list.
type RenameListCmd struct {
	to string
}

// SetNewName sets the --to value (for testing).
func (c *RenameListCmd) SetNewName(name string) {
	c.to = name
}

func (c *RenameListCmd) Name() string       { return "renamelist" }
func (c *RenameListCmd) Aliases() []string  { return nil }
func (c *RenameListCmd) Synopsis() string   { return "Rename a list" }
func (c *RenameListCmd) Usage() string      { return "todoctl renamelist --to <new-name> <list-name>" }
func (c *RenameListCmd) NeedsService() bool { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.to, "to", "", "")
}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}
	newName := strings.TrimSpace(c.to)
	if newName == "" {
		fmt.Fprintln(errOut, "error: new name required (--to)")
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
	if existing, err := findListByName(lists, newName); err == nil && existing.ID != list.ID {
		fmt.Fprintf(errOut, "error: list already exists: %s\n", newName)
		return exitcode.UserError
	}

	list.Name = newName
	if _, err := svc.UpdateList(ctx, list); err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
