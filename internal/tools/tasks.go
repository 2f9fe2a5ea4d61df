// Package tools contains the MCP tool handlers: typed inputs, default
// resolution against persisted settings, and result shaping.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/vault-todos/internal/models"
	"github.com/wagnerlima/vault-todos/internal/storage"
	"github.com/wagnerlima/vault-todos/internal/todo"
)

// TaskTools holds references needed by task tool handlers.
type TaskTools struct {
	Service *todo.Service
	Store   *storage.Store
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (t *TaskTools) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// --- Input types ---

type ListTasksInput struct {
	Completed    *bool   `json:"completed,omitempty" jsonschema:"Keep only completed (true) or open (false) tasks"`
	Path         *string `json:"path,omitempty" jsonschema:"Keep only tasks whose document path contains this substring"`
	Tag          *string `json:"tag,omitempty" jsonschema:"Keep only tasks with a tag containing this substring"`
	Status       *string `json:"status,omitempty" jsonschema:"Keep only tasks with exactly this status token (space=open, x=done)"`
	ExcludedDirs *string `json:"excluded_dirs,omitempty" jsonschema:"Comma-separated path prefixes to exclude; overrides the persisted default"`
}

type AddTaskInput struct {
	Document string `json:"document,omitempty" jsonschema:"Target document path; defaults to today's daily note"`
	Section  string `json:"section,omitempty" jsonschema:"Section heading to insert under; defaults to the configured heading"`
	Status   string `json:"status,omitempty" jsonschema:"Status token for the new task; defaults to open"`
	Text     string `json:"text" jsonschema:"The task text to add"`
}

type UpdateTaskInput struct {
	Document  string `json:"document" jsonschema:"Path of the document containing the task"`
	OldStatus string `json:"old_status,omitempty" jsonschema:"Current status token of the task; defaults to open"`
	OldText   string `json:"old_text" jsonschema:"Current task text, matched verbatim"`
	NewStatus string `json:"new_status,omitempty" jsonschema:"New status token; defaults to open"`
	NewText   string `json:"new_text" jsonschema:"New task text"`
}

// --- Handlers ---

func (t *TaskTools) criteria(input ListTasksInput) (models.FilterCriteria, error) {
	settings, err := t.Store.Load()
	if err != nil {
		return models.FilterCriteria{}, err
	}

	criteria := models.FilterCriteria{
		Completed:    input.Completed,
		Status:       input.Status,
		ExcludedDirs: settings.ExcludedDirList(),
	}
	if input.Path != nil {
		criteria.Path = *input.Path
	}
	if input.Tag != nil {
		criteria.Tag = *input.Tag
	}
	if input.ExcludedDirs != nil {
		criteria.ExcludedDirs = storage.Settings{ExcludedDirs: *input.ExcludedDirs}.ExcludedDirList()
	}
	return criteria, nil
}

func (t *TaskTools) ListTasks(_ context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, any, error) {
	criteria, err := t.criteria(input)
	if err != nil {
		return toolError("Failed to load settings: %v", err), nil, nil
	}

	tasks, err := t.Service.ListTasks(criteria)
	if err != nil {
		return toolError("Failed to list tasks: %v", err), nil, nil
	}
	if tasks == nil {
		tasks = []models.ProjectedTask{}
	}

	return toolJSON(struct {
		Count int                    `json:"count"`
		Tasks []models.ProjectedTask `json:"tasks"`
	}{Count: len(tasks), Tasks: tasks})
}

func (t *TaskTools) AddTask(_ context.Context, _ *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, any, error) {
	if input.Text == "" {
		return toolError("Task text is required"), nil, nil
	}

	settings, err := t.Store.Load()
	if err != nil {
		return toolError("Failed to load settings: %v", err), nil, nil
	}

	document := input.Document
	if document == "" {
		document = settings.DailyNotePath(t.now())
	}
	section := input.Section
	if section == "" {
		section = settings.SectionHeading
	}

	result, err := t.Service.AddTask(document, section, input.Status, input.Text)
	if err != nil {
		return toolError("Failed to add task: %v", err), nil, nil
	}
	return toolJSON(result)
}

func (t *TaskTools) UpdateTask(_ context.Context, _ *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, any, error) {
	if input.Document == "" {
		return toolError("Document path is required"), nil, nil
	}
	if input.OldText == "" || input.NewText == "" {
		return toolError("Both old_text and new_text are required"), nil, nil
	}

	result, err := t.Service.UpdateTask(input.Document, input.OldStatus, input.OldText, input.NewStatus, input.NewText)
	if err != nil {
		return toolError("Failed to update task: %v", err), nil, nil
	}
	return toolJSON(result)
}

func (t *TaskTools) GetTaskStats(_ context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, any, error) {
	criteria, err := t.criteria(input)
	if err != nil {
		return toolError("Failed to load settings: %v", err), nil, nil
	}

	stats, err := t.Service.Stats(criteria)
	if err != nil {
		return toolError("Failed to compute stats: %v", err), nil, nil
	}
	return toolJSON(stats)
}

// --- Helpers ---

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
