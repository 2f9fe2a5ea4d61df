// Package query implements the task query engine over a markdown vault:
// it scans documents for checklist lines and produces the hierarchical
// Grouping structure the normalization pipeline consumes, and resolves
// page listings for due-date discovery.
package query

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/wagnerlima/vault-todos/internal/models"
)

// Store is the document access the engine needs.
type Store interface {
	Read(path string) (string, error)
	ListMarkdownDocuments() ([]models.PageMeta, error)
}

// Engine scans the vault on every query. No index is kept; the vault is
// the source of truth and may change between calls.
type Engine struct {
	Store Store
}

// checkboxRe matches one checklist line: indentation, "- [", a single
// status token, "] ", and the task text. The status domain is open
// ended; space means open and x means done.
var (
	checkboxRe = regexp.MustCompile(`^([ \t]*)- \[(.)\] (.*)$`)
	tagRe      = regexp.MustCompile(`#[\w/-]+`)

	dueRe       = regexp.MustCompile(`📅\s*(\d{4}-\d{1,2}-\d{1,2})`)
	scheduledRe = regexp.MustCompile(`⏳\s*(\d{4}-\d{1,2}-\d{1,2})`)
	startRe     = regexp.MustCompile(`🛫\s*(\d{4}-\d{1,2}-\d{1,2})`)
)

// Query executes a task query and returns the raw Grouping. Only the
// fixed "TASK" query is supported; the result groups tasks per document
// in vault walk order, with subtasks nested under their parents.
func (e *Engine) Query(queryString string) (*models.QueryResult, error) {
	if strings.TrimSpace(queryString) != "TASK" {
		return nil, fmt.Errorf("unsupported query %q", queryString)
	}

	pages, err := e.Store.ListMarkdownDocuments()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var groups []models.Node
	for _, page := range pages {
		content, err := e.Store.Read(page.Path)
		if err != nil {
			log.Printf("query: skipping %s: %v", page.Path, err)
			continue
		}
		records := parseTasks(page.Path, content)
		if len(records) == 0 {
			continue
		}
		rows := make([]models.Node, 0, len(records))
		for _, rec := range records {
			rows = append(rows, toNode(rec))
		}
		groups = append(groups, models.GroupNode{Key: page.Path, Rows: rows})
	}

	return &models.QueryResult{Type: "task", Values: groups}, nil
}

// Pages returns the vault's page listing, narrowed by the selector. The
// selector is matched structurally; its values are never spliced into a
// query string.
func (e *Engine) Pages(sel models.PageSelector) ([]models.PageMeta, error) {
	pages, err := e.Store.ListMarkdownDocuments()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var out []models.PageMeta
	for _, p := range pages {
		if sel.Tag != "" && !hasTag(p, sel.Tag) {
			continue
		}
		if sel.Folder != "" && !inFolder(p, sel.Folder) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func hasTag(p models.PageMeta, tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	for _, t := range p.Tags {
		if strings.TrimPrefix(t, "#") == tag {
			return true
		}
	}
	return false
}

// inFolder matches documents inside the named folder, plus the folder's
// namesake document itself (so the self-reference guard upstream has
// something to exclude).
func inFolder(p models.PageMeta, folder string) bool {
	folder = strings.Trim(folder, "/")
	return p.Path == folder+".md" ||
		strings.HasPrefix(p.Path, folder+"/") ||
		strings.Contains(p.Path, "/"+folder+"/")
}

// taskTree is the mutable parse-time shape; records are materialized
// into value form once the document is fully parsed.
type taskTree struct {
	rec      models.TaskRecord
	children []*taskTree
}

// parseTasks extracts the document's checklist lines as a forest of
// task records. Nesting follows indentation; any non-checklist line
// closes all open tasks.
func parseTasks(path, content string) []models.TaskRecord {
	type frame struct {
		indent int
		node   *taskTree
	}

	var (
		top    []*taskTree
		stack  []frame
		offset int
	)

	for i, line := range strings.Split(content, "\n") {
		m := checkboxRe.FindStringSubmatch(line)
		if m == nil {
			stack = stack[:0]
			offset += len(line) + 1
			continue
		}

		indent, status, text := len(m[1]), m[2], strings.TrimSpace(m[3])
		node := &taskTree{rec: models.TaskRecord{
			Text:      text,
			Path:      path,
			Line:      i,
			Status:    status,
			Completed: status == "x" || status == "X",
			Scheduled: firstMatch(scheduledRe, text),
			Due:       firstMatch(dueRe, text),
			Start:     firstMatch(startRe, text),
			Tags:      tagRe.FindAllString(text, -1),
			Position: &models.Position{
				Start: models.Point{Line: i, Col: indent, Offset: offset + indent},
				End:   models.Point{Line: i, Col: len(line), Offset: offset + len(line)},
			},
		}}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			top = append(top, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.children = append(parent.children, node)
		}
		stack = append(stack, frame{indent: indent, node: node})

		offset += len(line) + 1
	}

	records := make([]models.TaskRecord, 0, len(top))
	for _, t := range top {
		records = append(records, materialize(t))
	}
	return records
}

// materialize converts a parse tree into a value record, filling in
// children and the derived fullyCompleted flag bottom-up.
func materialize(t *taskTree) models.TaskRecord {
	rec := t.rec
	fully := rec.Completed
	for _, c := range t.children {
		child := materialize(c)
		rec.Children = append(rec.Children, child)
		if !child.FullyCompleted {
			fully = false
		}
	}
	rec.FullyCompleted = fully
	return rec
}

// toNode mirrors a record's child records as nested task nodes.
func toNode(rec models.TaskRecord) models.TaskNode {
	n := models.TaskNode{Record: rec}
	for _, c := range rec.Children {
		n.Children = append(n.Children, toNode(c))
	}
	return n
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
