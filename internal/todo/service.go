// Package todo exposes the operation surface of the server: task
// listing through the normalization pipeline, checklist mutations, and
// task statistics.
package todo

import (
	"fmt"
	"log"
	"strings"

	"github.com/wagnerlima/vault-todos/internal/models"
	"github.com/wagnerlima/vault-todos/internal/pipeline"
)

// taskQuery is the single fixed query this service issues upstream.
const taskQuery = "TASK"

// QueryEngine is the task query collaborator.
type QueryEngine interface {
	Query(queryString string) (*models.QueryResult, error)
}

// DocumentStore is the slice of the document store the mutation path
// needs.
type DocumentStore interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Journal records successful mutations for diagnostics. Recording
// failures are logged, never surfaced.
type Journal interface {
	RecordEdit(op, path, oldLine, newLine string) error
}

// Service wires the collaborators behind the operation surface. Each
// call is an independent sequential unit of work; the service holds no
// mutable state and takes no locks of its own.
type Service struct {
	Engine  QueryEngine
	Docs    DocumentStore
	Journal Journal
}

// ListTasks runs the fixed task query through the full normalization
// pipeline and returns the projected records.
func (s *Service) ListTasks(criteria models.FilterCriteria) ([]models.ProjectedTask, error) {
	if s.Engine == nil {
		return nil, ErrUpstreamUnavailable
	}
	result, err := s.Engine.Query(taskQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if result == nil || result.Type != "task" {
		got := "nil"
		if result != nil {
			got = result.Type
		}
		return nil, fmt.Errorf("%w: expected task result, got %s", ErrUnexpectedShape, got)
	}
	return pipeline.Run(result.Values, criteria), nil
}

// TaskStats summarizes a task listing.
type TaskStats struct {
	Total  int            `json:"total"`
	ByFile map[string]int `json:"byFile"`
}

// Stats returns the total task count and a per-document breakdown for
// the tasks matching the criteria.
func (s *Service) Stats(criteria models.FilterCriteria) (*TaskStats, error) {
	tasks, err := s.ListTasks(criteria)
	if err != nil {
		return nil, err
	}
	stats := &TaskStats{Total: len(tasks), ByFile: make(map[string]int)}
	for _, t := range tasks {
		stats.ByFile[t.Path]++
	}
	return stats, nil
}

// checklistLine composes a checklist line from a status token and text.
func checklistLine(status, text string) string {
	if status == "" {
		status = " "
	}
	return "- [" + status + "] " + text
}

// AddResult reports a successful AddTask.
type AddResult struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// AddTask inserts a new checklist line immediately after the section
// heading line of the target document. The heading must exist as its
// own line; nothing is written otherwise.
func (s *Service) AddTask(document, sectionHeading, status, text string) (*AddResult, error) {
	content, err := s.Docs.Read(document)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(content, "\n")
	heading := strings.TrimRight(sectionHeading, " \t")
	at := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == heading {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSectionMissing, sectionHeading, document)
	}

	line := checklistLine(status, text)
	lines = append(lines[:at+1], append([]string{line}, lines[at+1:]...)...)
	if err := s.Docs.Write(document, strings.Join(lines, "\n")); err != nil {
		return nil, err
	}
	s.recordEdit("add", document, "", line)

	return &AddResult{Path: document, Text: text}, nil
}

// UpdateResult reports a successful UpdateTask.
type UpdateResult struct {
	Path    string `json:"path"`
	OldText string `json:"oldText"`
	NewText string `json:"newText"`
}

// UpdateTask replaces the first occurrence of the exact old status+text
// checklist line with the new one. There is no conflict detection
// beyond the exact-line match: if the line changed since the caller
// read it, the update fails with ErrTaskNotFound and writes nothing.
func (s *Service) UpdateTask(document, oldStatus, oldText, newStatus, newText string) (*UpdateResult, error) {
	content, err := s.Docs.Read(document)
	if err != nil {
		return nil, err
	}

	oldLine := checklistLine(oldStatus, oldText)
	if !strings.Contains(content, oldLine) {
		return nil, fmt.Errorf("%w: %q in %s", ErrTaskNotFound, oldLine, document)
	}

	newLine := checklistLine(newStatus, newText)
	updated := strings.Replace(content, oldLine, newLine, 1)
	if err := s.Docs.Write(document, updated); err != nil {
		return nil, err
	}
	s.recordEdit("update", document, oldLine, newLine)

	return &UpdateResult{Path: document, OldText: oldText, NewText: newText}, nil
}

func (s *Service) recordEdit(op, path, oldLine, newLine string) {
	if s.Journal == nil {
		return
	}
	if err := s.Journal.RecordEdit(op, path, oldLine, newLine); err != nil {
		log.Printf("edit journal: %v", err)
	}
}
