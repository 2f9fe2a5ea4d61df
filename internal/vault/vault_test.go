package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// setupVault creates a vault in a temp directory with the given
// documents (path → content).
func setupVault(t *testing.T, docs map[string]string) *Vault {
	t.Helper()
	dir := t.TempDir()
	for path, content := range docs {
		abs := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	v, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func TestOpenRejectsMissingDir(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing vault root")
	}
}

func TestReadWriteRoundtrip(t *testing.T) {
	v := setupVault(t, map[string]string{"notes.md": "# Notes\n"})

	got, err := v.Read("notes.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "# Notes\n" {
		t.Errorf("Read = %q", got)
	}

	if err := v.Write("notes.md", "# Updated\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err = v.Read("notes.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "# Updated\n" {
		t.Errorf("after Write, Read = %q", got)
	}
}

func TestReadNotFound(t *testing.T) {
	v := setupVault(t, nil)
	_, err := v.Read("missing.md")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReadDirectoryIsInvalidTarget(t *testing.T) {
	v := setupVault(t, map[string]string{"folder/doc.md": "x"})
	_, err := v.Read("folder")
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestWriteMissingDocumentFails(t *testing.T) {
	v := setupVault(t, nil)
	err := v.Write("missing.md", "content")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPathEscapeRejected(t *testing.T) {
	v := setupVault(t, nil)
	for _, path := range []string{"../outside.md", "/etc/passwd", "a/../../outside.md"} {
		if _, err := v.Read(path); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("Read(%q) err = %v, want ErrInvalidTarget", path, err)
		}
		if v.Exists(path) {
			t.Errorf("Exists(%q) = true", path)
		}
	}
}

func TestExists(t *testing.T) {
	v := setupVault(t, map[string]string{"a.md": "x"})
	if !v.Exists("a.md") {
		t.Error("Exists(a.md) = false")
	}
	if v.Exists("b.md") {
		t.Error("Exists(b.md) = true")
	}
}

func TestListMarkdownDocuments(t *testing.T) {
	v := setupVault(t, map[string]string{
		"top.md":            "# Top\n",
		"sub/inner.md":      "# Inner\n",
		"sub/data.txt":      "not markdown",
		".obsidian/conf.md": "hidden",
	})

	pages, err := v.ListMarkdownDocuments()
	if err != nil {
		t.Fatalf("ListMarkdownDocuments: %v", err)
	}

	var paths []string
	for _, p := range pages {
		paths = append(paths, p.Path)
		if p.Ext != "md" {
			t.Errorf("Ext = %q for %s", p.Ext, p.Path)
		}
	}
	want := []string{"sub/inner.md", "top.md"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestListReadsFrontmatterMetadata(t *testing.T) {
	v := setupVault(t, map[string]string{
		"course.md": "---\ncourse_id: BIO-110\ntags:\n  - education\n  - biology\n---\n# Course\n",
	})

	pages, err := v.ListMarkdownDocuments()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("len = %d", len(pages))
	}
	if pages[0].CourseID != "BIO-110" {
		t.Errorf("CourseID = %q", pages[0].CourseID)
	}
	if diff := cmp.Diff([]string{"education", "biology"}, pages[0].Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}
