package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"investment-assistant-go/internal/app"
	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/format"

	"github.com/google/subcommands"
)

// options are the flags shared by every command.
type options struct {
	configDir string
	style     string
	width     int
	raw       bool
	currency  string
}

var opts = options{configDir: "./configs", width: 100, currency: format.DefaultCurrency}

// Commands lists every command registered by main.
var Commands = []subcommands.Command{
	&statsCmd{},
	&tradesCmd{},
	&addTradeCmd{},
	&ideasCmd{},
	&quoteCmd{},
	&trendCmd{},
}

// runner is a command body that works on an opened App.
type runner interface {
	run(ctx context.Context, a *app.App, f *flag.FlagSet, w io.Writer) error
}

// execute opens the App, runs r and maps its error to an exit status.
func execute(ctx context.Context, r runner, f *flag.FlagSet) subcommands.ExitStatus {
	a, err := app.New(ctx, opts.configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := r.run(ctx, a, f, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, apperr.ErrValidation) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown writes md to w, styled for the terminal unless -raw is set.
func printMarkdown(w io.Writer, md string) error {
	if opts.raw {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := format.Render(md, opts.style, opts.width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
