// Package duedates implements the due-date table extraction engine: it
// scans candidate vault documents for a "# Due Dates" section, parses the
// pipe-delimited table inside it, validates and windows the dates, and
// aggregates the surviving rows into one globally sorted list.
package duedates

import (
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/wagnerlima/vault-todos/internal/models"
)

// Source is the slice of the query engine and document store the
// extractor needs: page discovery and whole-document reads.
type Source interface {
	Pages(sel models.PageSelector) ([]models.PageMeta, error)
	Read(path string) (string, error)
}

// EngineSource adapts the query engine's page listing and the document
// store's reads to the extractor's Source interface.
type EngineSource struct {
	Engine interface {
		Pages(sel models.PageSelector) ([]models.PageMeta, error)
	}
	Docs interface {
		Read(path string) (string, error)
	}
}

func (s *EngineSource) Pages(sel models.PageSelector) ([]models.PageMeta, error) {
	return s.Engine.Pages(sel)
}

func (s *EngineSource) Read(path string) (string, error) {
	return s.Docs.Read(path)
}

// Request carries one extraction call's parameters. Zero time values
// mean the corresponding bound was not supplied.
type Request struct {
	Category string
	Start    time.Time
	End      time.Time
	Query    string
}

// Extractor aggregates due-date rows across vault documents.
type Extractor struct {
	Source Source
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

const (
	// defaultLookback bounds the trailing window applied when no explicit
	// start/end was supplied: rows older than this are dropped, everything
	// newer (including the open-ended future) is kept.
	defaultLookback = 30 * 24 * time.Hour

	completionGlyph = "✅"
)

var (
	sectionRe    = regexp.MustCompile(`# Due Dates([\s\S]*?)(?:\n#|$)`)
	courseCodeRe = regexp.MustCompile(`[A-Z]{3}-[0-9]{3}`)
)

// dateLayouts is the set of date formats a due-date cell may use. Rows
// whose first cell parses as none of these are dropped.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	time.RFC3339,
}

// List extracts due-date entries from every candidate document and
// returns them sorted ascending by due date. A document that cannot be
// read is logged and skipped; it never aborts the aggregate call.
func (e *Extractor) List(req Request) ([]models.DueDateEntry, error) {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	pages, err := e.candidates(req)
	if err != nil {
		return nil, err
	}

	var entries []models.DueDateEntry
	for _, page := range pages {
		content, err := e.Source.Read(page.Path)
		if err != nil {
			log.Printf("due dates: skipping %s: %v", page.Path, err)
			continue
		}
		entries = append(entries, e.extractRows(page, content, req, now)...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, _ := parseDueDate(entries[i].DueDate)
		dj, _ := parseDueDate(entries[j].DueDate)
		return di.Before(dj)
	})
	return entries, nil
}

// candidates resolves the document listing and applies the local
// filters: the category's own document is excluded, only markdown
// documents qualify, and a free-text query narrows by name or path.
// A "#tag" query selects by tag at the engine level instead and skips
// the substring filters.
func (e *Extractor) candidates(req Request) ([]models.PageMeta, error) {
	var sel models.PageSelector
	tagQuery := strings.HasPrefix(req.Query, "#")
	switch {
	case tagQuery:
		sel.Tag = strings.TrimPrefix(req.Query, "#")
	case req.Category != "":
		sel.Folder = req.Category
	}

	pages, err := e.Source.Pages(sel)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(req.Query)
	var out []models.PageMeta
	for _, p := range pages {
		if req.Category != "" && p.Name == req.Category {
			continue
		}
		if p.Ext != "md" {
			continue
		}
		if req.Query != "" && !tagQuery {
			name := strings.ToLower(p.Name)
			path := strings.ToLower(p.Path)
			if !strings.Contains(name, search) && !strings.Contains(path, search) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// extractRows parses one document's due-dates section. A document
// without the section contributes nothing; malformed rows are dropped
// silently.
func (e *Extractor) extractRows(page models.PageMeta, content string, req Request, now time.Time) []models.DueDateEntry {
	m := sectionRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	lines := strings.Split(strings.TrimSpace(m[1]), "\n")
	if len(lines) < 2 {
		return nil
	}
	lines = lines[1:] // table header

	var entries []models.DueDateEntry
	for _, line := range lines {
		var cells []string
		for _, c := range strings.Split(line, "|") {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) < 2 {
			continue
		}
		dueDate, assignment := cells[0], cells[1]

		due, ok := parseDueDate(dueDate)
		if !ok || strings.Contains(assignment, completionGlyph) {
			continue
		}
		if !e.inWindow(due, req, now) {
			continue
		}
		if req.Query != "" && !strings.HasPrefix(req.Query, "#") &&
			!strings.Contains(strings.ToLower(assignment), strings.ToLower(req.Query)) {
			continue
		}

		entries = append(entries, models.DueDateEntry{
			DueDate:          dueDate,
			FormattedDueDate: formatDueDate(dueDate, due, now),
			Assignment:       formatAssignment(assignment, page, req.Category),
			FilePath:         page.Path,
		})
	}
	return entries
}

// inWindow applies the date-window policy: explicit bounds are honored
// inclusively at day granularity (a missing bound is open); with no
// bounds, only rows older than the trailing lookback are excluded, so
// all pending future due dates surface by default.
func (e *Extractor) inWindow(due time.Time, req Request, now time.Time) bool {
	if !req.Start.IsZero() || !req.End.IsZero() {
		if !req.Start.IsZero() && dayOf(due).Before(dayOf(req.Start)) {
			return false
		}
		if !req.End.IsZero() && dayOf(due).After(dayOf(req.End)) {
			return false
		}
		return true
	}
	return !due.Before(now.Add(-defaultLookback))
}

// formatAssignment leaves assignments that already carry a course code
// (three letters, hyphen, three digits) untouched; everything else is
// prefixed with the document's own category, the caller's, or "unknown".
func formatAssignment(assignment string, page models.PageMeta, category string) string {
	if courseCodeRe.MatchString(assignment) {
		return assignment
	}
	cat := page.CourseID
	if cat == "" {
		cat = category
	}
	if cat == "" {
		cat = "unknown"
	}
	return "#" + cat + " - " + assignment
}

// formatDueDate wraps the literal date in a recency-bucket marker for
// client styling. Bucketing never affects inclusion.
func formatDueDate(literal string, due, now time.Time) string {
	switch {
	case due.After(now.Add(-7 * 24 * time.Hour)):
		return `<span class="due one_week">` + literal + `</span>`
	case due.After(now.Add(-14 * 24 * time.Hour)):
		return `<span class="due two_weeks">` + literal + `</span>`
	default:
		return literal
	}
}

func parseDueDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
