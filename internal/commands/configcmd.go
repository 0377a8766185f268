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
	Register(&ConfigCmd{})
}

// ConfigCmd reads and writes config.yaml.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string       { return "config" }
func (c *ConfigCmd) Aliases() []string  { return nil }
func (c *ConfigCmd) Synopsis() string   { return "Show or change settings" }
func (c *ConfigCmd) Usage() string      { return "todoctl config show | todoctl config set <key> <value>" }
func (c *ConfigCmd) NeedsService() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: subcommand required (show, set)")
		return exitcode.UserError
	}

	switch args[0] {
	case "show":
		showConfig(cfg, out)
		return exitcode.Success
	case "set":
		if len(args) != 3 {
			fmt.Fprintln(errOut, "error: usage: todoctl config set <key> <value>")
			return exitcode.UserError
		}
		if err := cfg.Set(args[1], args[2]); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		printOK(out, cfg.Quiet)
		return exitcode.Success
	default:
		fmt.Fprintf(errOut, "error: unknown subcommand: %s\n", args[0])
		return exitcode.UserError
	}
}

// showConfig prints the effective settings. The token itself is never printed.
func showConfig(cfg *config.Config, out io.Writer) {
	token := "(not set)"
	if cfg.Token != "" {
		token = "(set)"
	}
	rows := [][2]string{
		{"config_dir", cfg.Dir},
		{config.KeyBaseURL, cfg.BaseURL},
		{config.KeyToken, token},
		{config.KeyTimeout, cfg.Timeout.String()},
		{config.KeyRateLimit, strconv.FormatFloat(cfg.RateLimit, 'g', -1, 64)},
		{config.KeyBatchConcurrency, strconv.Itoa(cfg.BatchConcurrency)},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-19s%s\n", r[0]+":", r[1])
	}
}
