// Package pipeline implements the task normalization pipeline: flattening
// of grouped query results, multi-stage filtering, hierarchy projection,
// deduplication, and field projection, in that fixed order.
package pipeline

import (
	"github.com/wagnerlima/vault-todos/internal/models"
)

// Flatten converts a Grouping tree into an ordered flat slice of task
// records using a depth-first pre-order walk. A group node contributes
// the flattened result of its rows; a task node contributes its record
// followed by its flattened children. Anything else is ignored. Empty
// input yields an empty result, never an error.
func Flatten(nodes []models.Node) []models.TaskRecord {
	var out []models.TaskRecord
	return appendFlattened(out, nodes)
}

func appendFlattened(out []models.TaskRecord, nodes []models.Node) []models.TaskRecord {
	for _, n := range nodes {
		switch n := n.(type) {
		case models.GroupNode:
			out = appendFlattened(out, n.Rows)
		case models.TaskNode:
			out = append(out, n.Record)
			if len(n.Children) > 0 {
				out = appendFlattened(out, n.Children)
			}
		}
	}
	return out
}
