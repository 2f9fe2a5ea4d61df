package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/vault-todos/internal/duedates"
	"github.com/wagnerlima/vault-todos/internal/storage"
	"github.com/wagnerlima/vault-todos/internal/todo"
	"github.com/wagnerlima/vault-todos/internal/tools"
)

// New creates a fully configured MCP server with all tools registered.
func New(svc *todo.Service, extractor *duedates.Extractor, store *storage.Store) *mcp.Server {
	tt := &tools.TaskTools{Service: svc, Store: store}
	dt := &tools.DueDateTools{Extractor: extractor}
	st := &tools.SettingsTools{Store: store}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "vault-todos",
		Version: "0.1.0",
	}, nil)

	// Task tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List vault tasks with optional completion, path, tag, and status filters",
	}, tt.ListTasks)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task under a section heading (defaults to today's daily note)",
	}, tt.AddTask)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_task",
		Description: "Update an existing task by exact status+text match (mark complete, change text)",
	}, tt.UpdateTask)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_task_stats",
		Description: "Get task statistics (total count and per-document breakdown)",
	}, tt.GetTaskStats)

	// Due-date tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_due_dates",
		Description: "Extract due-date table rows across vault documents, windowed by date and sorted ascending",
	}, dt.ListDueDates)

	// Settings tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_settings",
		Description: "Read the persisted server settings",
	}, st.GetSettings)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_setting",
		Description: "Persist one server setting (section_heading, daily_note_template, excluded_dirs)",
	}, st.SetSetting)

	return srv
}
