package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/vault-todos/internal/duedates"
	"github.com/wagnerlima/vault-todos/internal/models"
)

// DueDateTools holds references needed by the due-date tool handler.
type DueDateTools struct {
	Extractor *duedates.Extractor
}

// boundLayout is the format explicit window bounds must use.
const boundLayout = "2006-01-02"

type ListDueDatesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Course/category identifier used for document selection and assignment prefixes"`
	Start    string `json:"start,omitempty" jsonschema:"Inclusive window start (YYYY-MM-DD); default is a trailing 30-day window"`
	End      string `json:"end,omitempty" jsonschema:"Inclusive window end (YYYY-MM-DD); default is the open-ended future"`
	Query    string `json:"query,omitempty" jsonschema:"Free-text filter; #tag form selects documents by tag"`
}

func (t *DueDateTools) ListDueDates(_ context.Context, _ *mcp.CallToolRequest, input ListDueDatesInput) (*mcp.CallToolResult, any, error) {
	req := duedates.Request{
		Category: input.Category,
		Query:    input.Query,
	}

	if input.Start != "" {
		start, err := time.Parse(boundLayout, input.Start)
		if err != nil {
			return toolError("Invalid start date %q: use YYYY-MM-DD", input.Start), nil, nil
		}
		req.Start = start
	}
	if input.End != "" {
		end, err := time.Parse(boundLayout, input.End)
		if err != nil {
			return toolError("Invalid end date %q: use YYYY-MM-DD", input.End), nil, nil
		}
		req.End = end
	}

	entries, err := t.Extractor.List(req)
	if err != nil {
		return toolError("Failed to list due dates: %v", err), nil, nil
	}
	if entries == nil {
		entries = []models.DueDateEntry{}
	}

	return toolJSON(struct {
		Count   int                   `json:"count"`
		Entries []models.DueDateEntry `json:"entries"`
	}{Count: len(entries), Entries: entries})
}
