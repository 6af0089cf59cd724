package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"hashmerge/internal/consolidate"
	"hashmerge/internal/runs"
)

func main() {
	app := &cli.App{
		Name:  "hashmerge",
		Usage: "Consolidate hardware hash CSV exports into a single enrollment upload file",
		Commands: []*cli.Command{
			{
				Name:  "consolidate",
				Usage: "Merge all CSV files under a source directory into one consolidated file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "company",
						Aliases: []string{"c"},
						Usage:   "Company name embedded in the output filename",
					},
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Directory containing the CSV exports",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Directory the consolidated file is written to (defaults to the source directory)",
					},
					&cli.BoolFlag{
						Name:    "recursive",
						Aliases: []string{"r"},
						Usage:   "Also scan subdirectories for CSV files",
					},
					&cli.StringFlag{
						Name:  "key-field",
						Usage: "Column used for duplicate detection",
						Value: "Device Serial Number",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML file supplying run defaults; flags override",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Summary output format: text, json, or yaml",
						Value: "text",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "Comma-separated fields to keep in json/yaml output",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress progress output and info logging",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "Do not record this run in the history database",
					},
				},
				Action: consolidate.ConsolidateAction,
			},
			{
				Name:  "runs",
				Usage: "List past consolidation runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to list",
						Value: 20,
					},
				},
				Action: runs.RunsAction,
			},
			{
				Name:      "run",
				Usage:     "Show details for one run (latest when no ID given)",
				ArgsUsage: "[run-id]",
				Action:    runs.RunAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
}
