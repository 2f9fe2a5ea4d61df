package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/vault-todos/internal/storage"
)

// SettingsTools exposes the persisted runtime settings over MCP.
type SettingsTools struct {
	Store *storage.Store
}

type SetSettingInput struct {
	Key   string `json:"key" jsonschema:"Setting name: section_heading, daily_note_template, or excluded_dirs"`
	Value string `json:"value" jsonschema:"New value for the setting"`
}

func (t *SettingsTools) GetSettings(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	settings, err := t.Store.Load()
	if err != nil {
		return toolError("Failed to load settings: %v", err), nil, nil
	}
	return toolJSON(settings)
}

func (t *SettingsTools) SetSetting(_ context.Context, _ *mcp.CallToolRequest, input SetSettingInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolError("Setting key is required"), nil, nil
	}

	if err := t.Store.Set(input.Key, input.Value); err != nil {
		return toolError("Failed to set %s: %v", input.Key, err), nil, nil
	}

	settings, err := t.Store.Load()
	if err != nil {
		return toolError("Setting saved but reload failed: %v", err), nil, nil
	}
	return toolJSON(settings)
}
