// Package main implements the bump command: it rewrites the first semantic
// version on every line of the given files, optionally committing and tagging
// the result with git.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	bump "github.com/bcomnes/bump/pkg"
)

const name = "bump"

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "bump the first semantic version on each line of a file",
		Version: Version,
		Description: `Scans each input line by line. On every line the first MAJOR.MINOR.PATCH
version is bumped by the chosen level and everything else is copied through
unchanged. Plain numbers, two-component values such as 2.5 and dotted values
with four or more components such as 1.2.3.4 are left alone.

Examples:
  bump -i VERSION
  bump -i package.json -i README.md -l minor --commit --tag
  bump -i pom.xml -l M --dry
  cat VERSION | bump -i - -l m`,
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "file to process, may be repeated; \"-\" reads stdin and writes stdout",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Value:   bump.LevelPatch.String(),
				Usage:   "bump level: major, minor or patch (M, m or p)",
				Sources: cli.EnvVars("BUMP_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to this file instead of editing the input in place",
			},
			&cli.BoolFlag{
				Name:  "dry",
				Usage: "print a unified diff of the changes without writing anything",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: defaultWorkers,
				Usage: "number of files processed concurrently",
			},
			&cli.IntFlag{
				Name:  "max-line-length",
				Value: bump.DefaultMaxLineLength,
				Usage: "longest accepted line in bytes",
			},
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "stage and commit the rewritten files with the new version as the message",
			},
			&cli.BoolFlag{
				Name:  "tag",
				Usage: "tag the commit with v<new version>, requires --commit",
			},
			&cli.StringFlag{
				Name:  "go-mod",
				Usage: "on a major bump, update the /vN suffix of the module path in `DIR`/go.mod",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write Prometheus textfile metrics to `PATH` after the run",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: fmt.Sprintf("YAML config file (default %s when present)", defaultConfigFile),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level: debug, info, warn or error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "list every version found in the inputs without changing anything",
				Action: runScan,
			},
		},
		Action: runBump,
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
