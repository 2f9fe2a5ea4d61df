package models

// TaskRecord represents a single checklist task line extracted from a
// vault document. Dates are kept as literal YYYY-MM-DD strings; an empty
// string means the marker was absent.
type TaskRecord struct {
	Text           string       `json:"text"`
	Path           string       `json:"path"`
	Line           int          `json:"line"`
	Position       *Position    `json:"position,omitempty"`
	Status         string       `json:"status"`
	Completed      bool         `json:"completed"`
	FullyCompleted bool         `json:"fullyCompleted"`
	Scheduled      string       `json:"scheduled,omitempty"`
	Due            string       `json:"due,omitempty"`
	Start          string       `json:"start,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Children       []TaskRecord `json:"children,omitempty"`
	ParentID       *string      `json:"parent_id,omitempty"`
}

// Position locates a task line within its document. Display only, never
// part of task identity.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Point is a single location inside a document.
type Point struct {
	Line   int `json:"line"`
	Col    int `json:"col"`
	Offset int `json:"offset"`
}

// ProjectedTask is the canonical output shape of the task pipeline.
// Optional fields are omitted when absent on the source record;
// parent_id is always emitted, null for top-level tasks.
type ProjectedTask struct {
	Text           string    `json:"text"`
	Path           string    `json:"path"`
	Line           int       `json:"line"`
	Position       *Position `json:"position,omitempty"`
	Status         string    `json:"status"`
	Completed      bool      `json:"completed"`
	FullyCompleted bool      `json:"fullyCompleted"`
	Scheduled      string    `json:"scheduled,omitempty"`
	Due            string    `json:"due,omitempty"`
	Start          string    `json:"start,omitempty"`
	ParentID       *string   `json:"parent_id"`
}

// Node is a node in the Grouping tree returned by the task query engine.
// It is a closed sum: either a GroupNode or a TaskNode.
type Node interface {
	isNode()
}

// GroupNode groups an ordered list of child nodes (typically one group
// per source document).
type GroupNode struct {
	Key  string
	Rows []Node
}

// TaskNode carries one task record plus its nested subtask nodes.
type TaskNode struct {
	Record   TaskRecord
	Children []Node
}

func (GroupNode) isNode() {}
func (TaskNode) isNode()  {}

// QueryResult is the raw result of a task query: a result type tag and
// the Grouping tree. Consumers must verify Type before traversal.
type QueryResult struct {
	Type   string
	Values []Node
}

// DueDateEntry is one surviving row of a due-dates table.
type DueDateEntry struct {
	DueDate          string `json:"dueDate"`
	FormattedDueDate string `json:"formattedDueDate"`
	Assignment       string `json:"assignment"`
	FilePath         string `json:"filePath"`
}

// FilterCriteria holds the per-request task filters. Nil/empty fields
// impose no constraint.
type FilterCriteria struct {
	Completed    *bool
	Path         string
	Tag          string
	Status       *string
	ExcludedDirs []string
}

// PageMeta describes one vault document as seen by the query engine's
// page listing.
type PageMeta struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Ext      string   `json:"ext"`
	CourseID string   `json:"course_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// PageSelector narrows the page listing for due-date discovery. The
// fields are matched structurally; callers never interpolate them into
// an engine query string.
type PageSelector struct {
	Tag    string // match documents carrying this frontmatter tag
	Folder string // match documents under this folder prefix
}
