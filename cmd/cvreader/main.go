// Command cvreader generates CV and CSV waveforms, simulates their
// capacitive current and reduces oscilloscope recordings of real scans.
//
// Usage:
//
//	cvreader <command> [flags]
//
// Examples:
//
//	cvreader waveform -kind CSV -eupp 0.8 -elow -0.2 -de 0.005 -sr 0.1
//	cvreader simulate -config run.json -out results -plot
//	cvreader analyze -config run.json -input scan.csv -mode cs -alpha 0.3
//	cvreader estimate -input scan.csv -max-lag 500
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MoonshinetheP/oscilloscope-reader/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == cli.ExitOK {
		code = 130
	}
	stop()
	os.Exit(code)
}
