// Package locator enumerates candidate CSV input files under a source
// directory.
package locator

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hashmerge/models"
)

// Locate lists all files under root whose name ends in ".csv"
// (case-insensitive). When recursive is true it descends into nested
// directories to unbounded depth and display names are paths relative
// to root; otherwise only the top level is scanned and display names
// are bare filenames.
//
// Filesystem enumeration order is not portable, so results are sorted
// lexicographically by full path. Output row order depends on this.
func Locate(root string, recursive bool) ([]models.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, models.NewRunError(models.ErrInvalidDirectory, "source directory does not exist: %s", root)
	}

	var entries []models.FileEntry

	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Unreadable subdirectories are skipped, not fatal; a
				// failure on the root itself aborts the scan.
				if path == root {
					return walkErr
				}
				return nil
			}
			if d.IsDir() || !isCSV(d.Name()) {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = d.Name()
			}
			entries = append(entries, models.FileEntry{Path: path, DisplayName: rel})
			return nil
		})
		if err != nil {
			return nil, models.WrapRunError(models.ErrInvalidDirectory, err, "failed to scan source directory: %s", root)
		}
	} else {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, models.WrapRunError(models.ErrInvalidDirectory, err, "failed to list source directory: %s", root)
		}
		for _, d := range dirEntries {
			if d.IsDir() || !isCSV(d.Name()) {
				continue
			}
			entries = append(entries, models.FileEntry{
				Path:        filepath.Join(root, d.Name()),
				DisplayName: d.Name(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
