package pipeline

import (
	"strings"

	"github.com/wagnerlima/vault-todos/internal/models"
)

// doneStatus is the literal completion marker used in checklist lines.
const doneStatus = "x"

// ApplyFilters returns the subsequence of tasks satisfying every active
// criterion. Absent criteria impose no constraint; active ones combine
// with logical AND. Input order is preserved.
func ApplyFilters(tasks []models.TaskRecord, c models.FilterCriteria) []models.TaskRecord {
	out := tasks

	if c.Completed != nil {
		out = filterCompleted(out, *c.Completed)
	}
	if c.Path != "" {
		out = keep(out, func(t models.TaskRecord) bool {
			return strings.Contains(t.Path, c.Path)
		})
	}
	if c.Tag != "" {
		out = keep(out, func(t models.TaskRecord) bool {
			for _, tag := range t.Tags {
				if strings.Contains(tag, c.Tag) {
					return true
				}
			}
			return false
		})
	}
	if c.Status != nil {
		want := *c.Status
		out = keep(out, func(t models.TaskRecord) bool {
			return t.Status == want
		})
	}
	if excluded := activeExclusions(c.ExcludedDirs); len(excluded) > 0 {
		out = keep(out, func(t models.TaskRecord) bool {
			for _, prefix := range excluded {
				if strings.HasPrefix(t.Path, prefix) {
					return false
				}
			}
			return true
		})
	}

	return out
}

// filterCompleted reconciles the two completion signals: a record whose
// status token is the literal done marker is never treated as open, even
// if its completed flag disagrees.
func filterCompleted(tasks []models.TaskRecord, wantCompleted bool) []models.TaskRecord {
	if wantCompleted {
		return keep(tasks, func(t models.TaskRecord) bool {
			return t.Completed
		})
	}
	return keep(tasks, func(t models.TaskRecord) bool {
		return !t.Completed && t.Status != doneStatus
	})
}

// activeExclusions drops empty prefixes so a configured default that
// reduces to a single empty string disables the stage entirely.
func activeExclusions(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func keep(tasks []models.TaskRecord, pred func(models.TaskRecord) bool) []models.TaskRecord {
	var out []models.TaskRecord
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
