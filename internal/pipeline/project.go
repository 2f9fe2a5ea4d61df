package pipeline

import (
	"fmt"

	"github.com/wagnerlima/vault-todos/internal/models"
)

// ProjectHierarchy re-expresses parent/child nesting as flat sibling
// records joined by parent_id. Each input record is emitted with a nil
// parent_id, followed by a copy of each of its children carrying the
// parent's "{path}-{line}" reference. Children may already have been
// inlined by Flatten upstream; the deduplication stage is the safety
// net for that, so callers must never skip it.
func ProjectHierarchy(tasks []models.TaskRecord) []models.TaskRecord {
	var out []models.TaskRecord
	for _, t := range tasks {
		top := t
		top.ParentID = nil
		out = append(out, top)

		if len(t.Children) == 0 {
			continue
		}
		parentID := fmt.Sprintf("%s-%d", t.Path, t.Line)
		for _, c := range t.Children {
			child := c
			child.ParentID = &parentID
			out = append(out, child)
		}
	}
	return out
}

// Deduplicate drops records that repeat an earlier (path, line, text)
// triple. The first occurrence wins and relative order is preserved, so
// the operation is idempotent.
func Deduplicate(tasks []models.TaskRecord) []models.TaskRecord {
	seen := make(map[string]struct{}, len(tasks))
	var out []models.TaskRecord
	for _, t := range tasks {
		key := fmt.Sprintf("%s\x00%d\x00%s", t.Path, t.Line, t.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ProjectFields restricts each record to the canonical output field set.
// Optional fields absent on the source stay absent on the output;
// parent_id is always present, null for top-level tasks.
func ProjectFields(tasks []models.TaskRecord) []models.ProjectedTask {
	out := make([]models.ProjectedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, models.ProjectedTask{
			Text:           t.Text,
			Path:           t.Path,
			Line:           t.Line,
			Position:       t.Position,
			Status:         t.Status,
			Completed:      t.Completed,
			FullyCompleted: t.FullyCompleted,
			Scheduled:      t.Scheduled,
			Due:            t.Due,
			Start:          t.Start,
			ParentID:       t.ParentID,
		})
	}
	return out
}

// Run executes the full normalization pipeline in its fixed order:
// flatten, filter, project hierarchy, deduplicate, project fields.
func Run(rows []models.Node, criteria models.FilterCriteria) []models.ProjectedTask {
	flat := Flatten(rows)
	filtered := ApplyFilters(flat, criteria)
	projected := ProjectHierarchy(filtered)
	deduped := Deduplicate(projected)
	return ProjectFields(deduped)
}
