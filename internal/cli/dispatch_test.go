package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"todoctl/internal/backend/rest"
	"todoctl/internal/cli"
	"todoctl/internal/commands"
	"todoctl/internal/config"
	apierr "todoctl/internal/errors"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Service, error) {
		return svc, nil
	}
}

func failingFactory(err error) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Service, error) {
		return nil, err
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	// Common flags must come before positional arguments
	full := append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	code := d.Run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todoctl 0.1.0\n" {
		t.Errorf("expected 'todoctl 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--list"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -list\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("home", "Home", 0)
	svc.AddTask("home", "t1", "Buy milk", 0)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "   a1  [ ] Buy milk\n") {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		prefix string
	}{
		{"unauthorized", apierr.New(apierr.ErrCodeUnauthorized, "token rejected"), exitcode.AuthError, "error: auth error: "},
		{"bad base url", apierr.New(apierr.ErrCodeInvalidRequest, `invalid base url: "localhost"`), exitcode.AuthError, "error: config error: "},
		{"transport", apierr.New(apierr.ErrCodeTransport, "request failed"), exitcode.BackendError, "error: backend error: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, failingFactory(tt.err))

			_, stderr, code := run(t, dispatcher, "lists")

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if !strings.HasPrefix(stderr, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, stderr)
			}
		})
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "lists")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: no backend configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_LocalCommandsSkipFactory(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Service, error) {
		called = true
		return nil, nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, _, code := run(t, dispatcher, "logout")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("logout must not build a backend client")
	}
}

// restFactory builds real REST clients against a fake backend.
func restFactory(baseURL string, reg *prometheus.Registry) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Service, error) {
		return rest.NewWithBaseURL(baseURL, rest.WithLogger(logger), rest.WithRegisterer(reg))
	}
}

func TestDispatcher_EndToEnd(t *testing.T) {
	fb := testutil.NewFakeBackend()
	srv := fb.Start(t)
	reg := prometheus.NewRegistry()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, restFactory(srv.URL, reg))
	dispatcher.SetRequestCounter(func() (float64, error) { return rest.RequestCount(reg) })

	steps := [][]string{
		{"createlist", "Groceries"},
		{"createlist", "Chores"},
		{"add", "Buy", "milk"},
		{"add", "--list", "Chores", "Vacuum"},
		{"done", "b1"},
	}
	for _, args := range steps {
		if _, stderr, code := run(t, dispatcher, args...); code != exitcode.Success {
			t.Fatalf("%v: exit code %d, stderr %q", args, code, stderr)
		}
	}

	stdout, stderr, code := run(t, dispatcher, "list", "--debug")
	if code != exitcode.Success {
		t.Fatalf("list: exit code %d, stderr %q", code, stderr)
	}
	expected := "------------\na) Groceries\n------------\n" +
		"   a1  [ ] Buy milk\n" +
		"------------\nb) Chores\n------------\n" +
		"   b1  [x] Vacuum\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if !strings.Contains(stderr, "command finished") || !strings.Contains(stderr, "requests") {
		t.Errorf("expected debug request total in stderr, got %q", stderr)
	}

	stdout, stderr, code = run(t, dispatcher, "show", "a1")
	if code != exitcode.Success {
		t.Fatalf("show: exit code %d, stderr %q", code, stderr)
	}
	testutil.GoldenString(t, "show_task", stdout)

	if fb.TaskCount() != 2 {
		t.Errorf("expected 2 tasks on the backend, got %d", fb.TaskCount())
	}
	total, err := rest.RequestCount(reg)
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if int(total) != len(fb.Requests()) {
		t.Errorf("expected %d counted requests, got %v", len(fb.Requests()), total)
	}
}

func TestDispatcher_EndToEndMoveList(t *testing.T) {
	fb := testutil.NewFakeBackend()
	first := fb.SeedList("First", 0)
	second := fb.SeedList("Second", 1)
	third := fb.SeedList("Third", 2)
	fb.FailListOrder(second, "list is locked")
	srv := fb.Start(t)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, restFactory(srv.URL, prometheus.NewRegistry()))

	_, stderr, code := run(t, dispatcher, "movelist", "Third", "1")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "error: list Second: list is locked\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if fb.ListOrder(third) != 0 || fb.ListOrder(first) != 1 {
		t.Errorf("successful updates should still apply, got first=%d third=%d",
			fb.ListOrder(first), fb.ListOrder(third))
	}
}
