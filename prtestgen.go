package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/prtestgen/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    "prtestgen",
		Usage:   "Generate unit tests for the files changed in a pull request",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE` (default ./prtestgen.toml when present)",
				EnvVars: []string{"PRTESTGEN_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			cmd.GenerateCommand(),
			cmd.ConfigCommand(),
		},
		DefaultCommand: "generate",
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
