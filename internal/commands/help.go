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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. Usage lines come from the registry.
type HelpCmd struct {
	registry *Registry
}

// SetRegistry replaces DefaultRegistry (for testing).
func (c *HelpCmd) SetRegistry(r *Registry) {
	c.registry = r
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todoctl help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.registry
	if reg == nil {
		reg = DefaultRegistry
	}
	backend, local := reg.Groups()

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  todoctl                  List all lists and tasks")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Lists and tasks:")
	printUsages(out, backend)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Setup:")
	printUsages(out, local)
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

func printUsages(out io.Writer, cmds []Command) {
	for _, c := range cmds {
		fmt.Fprintf(out, "  %s\n", c.Usage())
		fmt.Fprintf(out, "      %s\n", c.Synopsis())
	}
}

const helpFooter = `
Task references:
  N    task N of the first list
  aN   task N of the list with letter a (see: todoctl lists)

Common flags (any command):
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Settings (config.yaml or TODOCTL_<KEY>):
  base_url, token, timeout, rate_limit, batch_concurrency
`
