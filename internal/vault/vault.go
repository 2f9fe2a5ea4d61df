// Package vault is the filesystem-backed document store: it reads and
// writes whole markdown documents by vault-relative path and lists the
// vault's markdown documents with their frontmatter metadata.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/wagnerlima/vault-todos/internal/models"
)

var (
	// ErrNotFound reports that no document exists at the given path.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidTarget reports that the path resolves to something other
	// than a document (a directory, or outside the vault).
	ErrInvalidTarget = errors.New("path is not a document")
)

// Vault provides document access rooted at a single directory. Paths
// are opaque vault-relative strings; the vault never interprets them
// beyond resolving against its root.
type Vault struct {
	root string
}

// Open verifies the root directory exists and returns a Vault over it.
func Open(root string) (*Vault, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", root)
	}
	return &Vault{root: root}, nil
}

// Root returns the vault's root directory.
func (v *Vault) Root() string {
	return v.root
}

// resolve maps a vault-relative path to an absolute one, refusing paths
// that escape the root.
func (v *Vault) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrInvalidTarget, path)
	}
	return filepath.Join(v.root, clean), nil
}

// Read returns a document's full text content.
func (v *Vault) Read(path string) (string, error) {
	abs, err := v.resolve(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidTarget, path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces an existing document's content atomically. Writing to
// a path with no document fails with ErrNotFound; documents are created
// by the user's editor, not by this server.
func (v *Vault) Write(path, content string) error {
	abs, err := v.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, path)
	}
	if err := atomic.WriteFile(abs, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a document exists at the given path.
func (v *Vault) Exists(path string) bool {
	abs, err := v.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// ListMarkdownDocuments walks the vault and returns metadata for every
// markdown document, in lexical walk order. Hidden directories (such as
// .obsidian) are skipped.
func (v *Vault) ListMarkdownDocuments() ([]models.PageMeta, error) {
	var pages []models.PageMeta
	err := filepath.WalkDir(v.root, func(abs string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") && abs != v.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(v.root, abs)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		meta := models.PageMeta{
			Name: strings.TrimSuffix(d.Name(), ".md"),
			Path: rel,
			Ext:  "md",
		}
		// Frontmatter is best-effort page metadata; an unreadable or
		// malformed document still lists.
		if data, err := os.ReadFile(abs); err == nil {
			fm := parseFrontmatter(string(data))
			meta.CourseID = fm.CourseID
			meta.Tags = fm.Tags
		}
		pages = append(pages, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault documents: %w", err)
	}
	return pages, nil
}
