// cmd/idea-generator/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("idea-generator", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Path to a YAML config file (default: configs/config.yaml when present)")
	global.Usage = func() { usage(stderr) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	cmd, ok := cliCommands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(rest[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	exec := cmd.setup(fs)
	if err := fs.Parse(rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if cmd.standalone {
		return report(stderr, exec(ctx, nil, stdout))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return report(stderr, err)
	}
	a, err := newApp(cfg)
	if err != nil {
		return report(stderr, err)
	}
	defer a.close()

	if cmd.migratesOnStart {
		a.migrateConfiguredLegacyKey()
	}
	return report(stderr, exec(ctx, a, stdout))
}

func report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, "error:", err)
	return 1
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: idea-generator [-config PATH] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-12s %s\n", name, cliCommands[name].summary)
	}
}
