// Package cli implements the cvreader command line tool.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// now is the clock used for output file names.
var now = time.Now

// errUsage marks errors caused by the command line rather than the data.
var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"waveform", "generate a CV or CSV potential waveform", runWaveform},
	{"simulate", "simulate the capacitive current of a waveform", runSimulate},
	{"analyze", "reduce an oscilloscope current recording", runAnalyze},
	{"estimate", "estimate the step interval of a recording", runEstimate},
}

// Run executes the subcommand named by args[0] and returns the process
// exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return ExitUsage
	}

	name := args[0]
	if name == "-h" || name == "-help" || name == "--help" || name == "help" {
		usage(stdout)
		return ExitOK
	}

	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(ctx, args[1:], stdout, stderr)
		switch {
		case err == nil:
			return ExitOK
		case errors.Is(err, flag.ErrHelp):
			return ExitOK
		case errors.Is(err, errUsage):
			_, _ = fmt.Fprintf(stderr, "cvreader %s: %v\n", name, err)
			return ExitUsage
		default:
			_, _ = fmt.Fprintf(stderr, "cvreader %s: %v\n", name, err)
			return ExitFailure
		}
	}

	_, _ = fmt.Fprintf(stderr, "cvreader: unknown command %q\n\n", name)
	usage(stderr)
	return ExitUsage
}

func usage(w io.Writer) {
	var b strings.Builder
	b.WriteString("Usage: cvreader <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	b.WriteString("\nRun 'cvreader <command> -h' for the flags of a command.\n")
	_, _ = io.WriteString(w, b.String())
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
