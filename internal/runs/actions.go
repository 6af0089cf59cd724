package runs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	dbpkg "hashmerge/pkg/db"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-20s %-16s %-6s %-6s %-8s %-6s\n",
		"ID", "Created", "Company", "Status", "Files", "Fail", "Records", "Dups")
	fmt.Println(strings.Repeat("-", 96))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-20s %-16s %-6d %-6d %-8d %-6d\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			truncate(r.CompanyName, 20),
			r.Status,
			r.FilesProcessed,
			r.FilesFailed,
			r.TotalRecords,
			r.ExtraOccurrences,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'hashmerge run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run (latest when no ID given)
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	failures, err := database.GetRunFailures(runID)
	if err != nil {
		return fmt.Errorf("failed to get run failures: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Company:     %s\n", run.CompanyName)
	fmt.Printf("Source:      %s (recursive: %t)\n", run.SourceDir, run.Recursive)
	fmt.Printf("Output dir:  %s\n", run.OutputDir)
	fmt.Printf("Key field:   %s\n", run.KeyField)
	fmt.Printf("Status:      %s\n", run.Status)

	if run.Status == "success" {
		fmt.Printf("Files:       %d processed, %d failed\n", run.FilesProcessed, run.FilesFailed)
		fmt.Printf("Records:     %d total\n", run.TotalRecords)
		fmt.Printf("Duplicates:  %d group(s), %d extra occurrence(s)\n",
			run.DuplicateGroups, run.ExtraOccurrences)
		if run.OutputPath.Valid {
			fmt.Printf("Output:      %s\n", run.OutputPath.String)
		}
	} else if run.ErrorMessage.Valid {
		fmt.Printf("Error:       %s\n", run.ErrorMessage.String)
	}

	if len(failures) > 0 {
		fmt.Printf("\nFailed files (%d):\n", len(failures))
		fmt.Println(strings.Repeat("-", 60))
		for i, f := range failures {
			fmt.Printf("%2d. %s\n", i+1, f.FileName)
			fmt.Printf("    Error: %s\n", f.Message)
		}
	}

	return nil
}

// runIDOrLatest resolves the run ID from the first argument, falling
// back to the most recent run.
func runIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.Args().Len() == 0 {
		return database.GetLatestRunID()
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID %q: %w", c.Args().First(), err)
	}
	return runID, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
