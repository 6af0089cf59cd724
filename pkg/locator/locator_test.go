package locator

import (
	"os"
	"path/filepath"
	"testing"

	"hashmerge/models"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLocate_TopLevelOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.csv", "h\n")
	writeFile(t, root, "B.CSV", "h\n")
	writeFile(t, root, "notes.txt", "not a csv")
	writeFile(t, root, filepath.Join("sub", "c.csv"), "h\n")

	entries, err := Locate(root, false)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	// Lexicographic by full path: "B.CSV" sorts before "a.csv"
	if entries[0].DisplayName != "B.CSV" {
		t.Errorf("entries[0].DisplayName = %q, want %q", entries[0].DisplayName, "B.CSV")
	}
	if entries[1].DisplayName != "a.csv" {
		t.Errorf("entries[1].DisplayName = %q, want %q", entries[1].DisplayName, "a.csv")
	}
}

func TestLocate_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.csv", "h\n")
	writeFile(t, root, filepath.Join("sub", "c.csv"), "h\n")
	writeFile(t, root, filepath.Join("sub", "deep", "d.csv"), "h\n")
	writeFile(t, root, filepath.Join("sub", "skip.txt"), "nope")

	entries, err := Locate(root, true)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	wantNames := []string{
		"a.csv",
		filepath.Join("sub", "c.csv"),
		filepath.Join("sub", "deep", "d.csv"),
	}
	for i, want := range wantNames {
		if entries[i].DisplayName != want {
			t.Errorf("entries[%d].DisplayName = %q, want %q", i, entries[i].DisplayName, want)
		}
	}
}

func TestLocate_MissingRoot(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "does-not-exist"), false)
	if err == nil {
		t.Fatal("Locate() error = nil, want invalid_directory")
	}
	if kind := models.KindOf(err); kind != models.ErrInvalidDirectory {
		t.Errorf("KindOf(err) = %q, want %q", kind, models.ErrInvalidDirectory)
	}
}

func TestLocate_EmptyDirectory(t *testing.T) {
	entries, err := Locate(t.TempDir(), false)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestLocate_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.csv", "m.csv", "a.csv"} {
		writeFile(t, root, name, "h\n")
	}

	first, err := Locate(root, false)
	if err != nil {
		t.Fatalf("Locate() first call error = %v", err)
	}
	second, err := Locate(root, false)
	if err != nil {
		t.Fatalf("Locate() second call error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entries[%d] differ: %v vs %v", i, first[i], second[i])
		}
	}
	if first[0].DisplayName != "a.csv" || first[2].DisplayName != "z.csv" {
		t.Errorf("entries not sorted: %v", first)
	}
}
