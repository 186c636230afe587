// pvsim simulates photovoltaic systems: it executes scenario files through
// the model chain and renders run reports.
//
// Usage:
//
//	pvsim run -scenario site.yaml [-weather file -weather-format srml] [-format text] [-out path]
//	pvsim models
//	pvsim explore [-save scenario.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-pvsim/internal/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "pvsim:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errors.New("a command is required")
	}

	switch args[0] {
	case "run":
		return cmdRun(ctx, args[1:])
	case "models":
		return cmdModels(args[1:])
	case "explore":
		return cmdExplore(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		usage(os.Stdout)
		return nil
	}
	usage(os.Stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `pvsim simulates photovoltaic systems.

Commands:
  run      execute a scenario file and print or save the run report
  models   list the registered model keys per pipeline stage
  explore  build a scenario interactively and simulate one day

Run "pvsim <command> -h" for the command's flags.`)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
