package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range Commands {
		commander.Register(c, "")
	}

	flag.StringVar(&opts.configDir, "config", "./configs", "directory holding config.yml")
	flag.StringVar(&opts.style, "style", "", `output style: "dark", "light" or "notty" (default: detect)`)
	flag.IntVar(&opts.width, "width", 100, "wrap output at this many columns")
	flag.BoolVar(&opts.raw, "raw", false, "print Markdown without terminal styling")
	flag.StringVar(&opts.currency, "currency", "USD", "currency used to display trade amounts")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
