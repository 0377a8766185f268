// Package main is the entry point for the todoctl CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"todoctl/internal/backend/rest"
	"todoctl/internal/cli"
	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Client metrics stay in-process; --debug logs the request total
	reg := prometheus.NewRegistry()

	factory := func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Service, error) {
		return rest.New(ctx, cfg, rest.WithLogger(logger), rest.WithRegisterer(reg))
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	dispatcher.SetRequestCounter(func() (float64, error) {
		return rest.RequestCount(reg)
	})

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
