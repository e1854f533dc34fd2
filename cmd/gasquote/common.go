package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/zeebo/errs"

	"storj.io/crypto-gas-quote/pkg/config"
	"storj.io/crypto-gas-quote/pkg/fancy"
)

var (
	usageErr = errs.Class("usage")
)

// run executes the command line and returns the process exit status: 0 on
// success, 1 for usage errors and 2 for everything else.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	p := fancy.NewPrinter(stderr, isTerminal(stderr))
	if usageErr.Has(err) {
		// usage errors exit with 1
		p.Warnf("%v\n\n", err)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
		return 1
	}

	// other errors exit with 2
	p.Errorf("error: %+v\n", err)
	if dump := config.DumpUnknownFields(err); dump != "" {
		_, _ = fmt.Fprintln(stderr, dump)
	}
	return 2
}

// isTerminal reports whether w is a terminal, so that output piped to a file
// or another program is never colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
