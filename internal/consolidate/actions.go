package consolidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
	"hashmerge/internal/common"
	"hashmerge/models"
	dbpkg "hashmerge/pkg/db"
	"hashmerge/pkg/pipeline"
)

// maxFailuresShown caps the failed-file list in the text summary.
const maxFailuresShown = 5

func ConsolidateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := buildRunConfig(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  hashmerge consolidate --company "Acme" --source ./exports --out ./merged`)
		fmt.Fprintln(os.Stderr, `  hashmerge consolidate --config run.yaml --recursive`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: hashmerge consolidate --help")
		os.Exit(1)
	}

	// Open the run-history database unless history is disabled.
	var database *dbpkg.DB
	if !c.Bool("no-history") {
		database, err = dbpkg.Open()
		if err != nil {
			logger.Error("failed to open run-history database", "error", err)
			os.Exit(2)
		}
		defer database.Close()
	}

	logger.Info("Starting consolidation",
		"company", cfg.CompanyName,
		"source", cfg.SourceDir,
		"output", cfg.OutputDir,
		"recursive", cfg.Recursive)

	var progress func(name string, index, total int)
	if !c.Bool("quiet") {
		progress = func(name string, index, total int) {
			fmt.Fprintf(os.Stderr, "  [%d/%d] %s\n", index, total, name)
		}
	}

	result, runErr := pipeline.New().Run(*cfg, progress)
	if runErr != nil {
		kind := models.KindOf(runErr)
		if database != nil {
			if _, recErr := database.RecordFailure(*cfg, kind, runErr.Error()); recErr != nil {
				logger.Warn("Failed to record run in history", "error", recErr)
			}
		}
		return cli.Exit(fmt.Sprintf("Error: %s", runErr), 2)
	}

	if database != nil {
		runID, recErr := database.RecordSuccess(*cfg, result)
		if recErr != nil {
			logger.Warn("Failed to record run in history", "error", recErr)
		} else {
			logger.Info("Run recorded", "run_id", runID)
		}
	}

	return printResult(c, result)
}

// buildRunConfig merges the optional YAML config file with CLI flags;
// flags win. The company name must be non-empty after merging.
func buildRunConfig(c *cli.Context) (*models.RunConfig, error) {
	cfg := &models.RunConfig{}

	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("company") {
		cfg.CompanyName = c.String("company")
	}
	if c.IsSet("source") {
		cfg.SourceDir = c.String("source")
	}
	if c.IsSet("out") {
		cfg.OutputDir = c.String("out")
	}
	if c.IsSet("recursive") {
		cfg.Recursive = c.Bool("recursive")
	}
	if c.IsSet("key-field") {
		cfg.KeyField = c.String("key-field")
	}

	if cfg.CompanyName == "" {
		return nil, errors.New("company name cannot be empty")
	}
	if cfg.SourceDir == "" {
		return nil, errors.New("source directory is required")
	}
	if cfg.OutputDir == "" {
		// Original tool behavior: output lands next to the inputs.
		cfg.OutputDir = cfg.SourceDir
	}

	return cfg, nil
}

func printResult(c *cli.Context, result *models.RunResult) error {
	format := c.String("format")
	fields := c.String("fields")

	switch format {
	case "json", "yaml":
		var outputData []byte
		var marshalErr error
		if fields != "" {
			filtered := common.FilterResultFields(result, fields)
			if format == "yaml" {
				outputData, marshalErr = yaml.Marshal(filtered)
			} else {
				outputData, marshalErr = json.MarshalIndent(filtered, "", "  ")
			}
		} else if format == "yaml" {
			outputData, marshalErr = yaml.Marshal(result)
		} else {
			outputData, marshalErr = json.MarshalIndent(result, "", "  ")
		}
		if marshalErr != nil {
			return cli.Exit(fmt.Sprintf("Error: failed to marshal result: %s", marshalErr), 2)
		}
		fmt.Println(string(outputData))
	default:
		printTextSummary(result)
	}

	return nil
}

func printTextSummary(result *models.RunResult) {
	fmt.Printf("Files processed: %d\n", result.FilesProcessed)
	fmt.Printf("Total entries:   %d\n", result.TotalRecords)

	if result.FilesFailed > 0 {
		fmt.Printf("Files failed:    %d\n", result.FilesFailed)
		for i, failure := range result.Failures {
			if i == maxFailuresShown {
				fmt.Printf("  ... and %d more\n", len(result.Failures)-maxFailuresShown)
				break
			}
			fmt.Printf("  - %s: %s\n", failure.File, failure.Message)
		}
	}

	if result.ReplacedOutput {
		fmt.Println("Warning: an output file with the same name existed and was overwritten")
	}

	if result.Duplicates.DuplicateGroups > 0 {
		fmt.Printf("Warning: %d duplicate value(s) of %q across %d group(s); duplicates are kept in the output\n",
			result.Duplicates.ExtraOccurrences, result.Duplicates.KeyField, result.Duplicates.DuplicateGroups)
	}

	fmt.Printf("\nOutput saved to: %s\n", result.OutputPath)
}
