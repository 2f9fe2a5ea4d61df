package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wagnerlima/vault-todos/internal/models"
)

// fakeStore serves documents from a map, listed in the given order.
type fakeStore struct {
	order   []models.PageMeta
	content map[string]string
}

func (f *fakeStore) Read(path string) (string, error) {
	content, ok := f.content[path]
	if !ok {
		return "", errors.New("document not found")
	}
	return content, nil
}

func (f *fakeStore) ListMarkdownDocuments() ([]models.PageMeta, error) {
	return f.order, nil
}

func engineOver(docs map[string]string, order ...models.PageMeta) *Engine {
	return &Engine{Store: &fakeStore{order: order, content: docs}}
}

func md(name, path string) models.PageMeta {
	return models.PageMeta{Name: name, Path: path, Ext: "md"}
}

func TestQueryRejectsUnknownQueries(t *testing.T) {
	e := engineOver(nil)
	if _, err := e.Query("LIST"); err == nil {
		t.Error("expected error for non-TASK query")
	}
}

func TestQueryGroupsTasksPerDocument(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "# Notes\n- [ ] first\n- [x] second\n",
		"b.md": "no tasks here\n",
		"c.md": "- [ ] third\n",
	}, md("a", "a.md"), md("b", "b.md"), md("c", "c.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if result.Type != "task" {
		t.Errorf("Type = %q, want task", result.Type)
	}
	if len(result.Values) != 2 {
		t.Fatalf("groups = %d, want 2 (taskless documents contribute none)", len(result.Values))
	}

	group, ok := result.Values[0].(models.GroupNode)
	if !ok {
		t.Fatalf("Values[0] is %T, want GroupNode", result.Values[0])
	}
	if group.Key != "a.md" || len(group.Rows) != 2 {
		t.Errorf("group = %q with %d rows", group.Key, len(group.Rows))
	}
}

func TestQueryParsesTaskFields(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "- [x] ship release #work/launch 📅 2025-11-15 ⏳ 2025-11-10 🛫 2025-11-01\n",
	}, md("a", "a.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatal(err)
	}
	rec := result.Values[0].(models.GroupNode).Rows[0].(models.TaskNode).Record

	if rec.Status != "x" || !rec.Completed {
		t.Errorf("status/completed = %q/%v", rec.Status, rec.Completed)
	}
	if rec.Due != "2025-11-15" || rec.Scheduled != "2025-11-10" || rec.Start != "2025-11-01" {
		t.Errorf("dates = due %q scheduled %q start %q", rec.Due, rec.Scheduled, rec.Start)
	}
	if diff := cmp.Diff([]string{"#work/launch"}, rec.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if rec.Line != 0 || rec.Path != "a.md" {
		t.Errorf("line/path = %d/%q", rec.Line, rec.Path)
	}
	if rec.Position == nil || rec.Position.Start.Line != 0 {
		t.Errorf("position = %+v", rec.Position)
	}
}

func TestQueryCustomStatusTokens(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "- [>] forwarded\n- [?] questionable\n",
	}, md("a", "a.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatal(err)
	}
	rows := result.Values[0].(models.GroupNode).Rows
	first := rows[0].(models.TaskNode).Record
	if first.Status != ">" || first.Completed {
		t.Errorf("custom status parsed as %q/%v", first.Status, first.Completed)
	}
}

func TestQueryNestsSubtasksByIndentation(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "- [ ] parent\n  - [ ] child\n    - [ ] grandchild\n- [ ] sibling\n",
	}, md("a", "a.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatal(err)
	}
	rows := result.Values[0].(models.GroupNode).Rows
	if len(rows) != 2 {
		t.Fatalf("top-level rows = %d, want 2", len(rows))
	}

	parent := rows[0].(models.TaskNode)
	if len(parent.Children) != 1 {
		t.Fatalf("parent children = %d, want 1", len(parent.Children))
	}
	child := parent.Children[0].(models.TaskNode)
	if child.Record.Text != "child" || len(child.Children) != 1 {
		t.Errorf("child = %q with %d children", child.Record.Text, len(child.Children))
	}

	// The record mirrors the node nesting.
	if len(parent.Record.Children) != 1 || parent.Record.Children[0].Text != "child" {
		t.Errorf("record children = %+v", parent.Record.Children)
	}
}

func TestQueryFullyCompleted(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "- [x] all done\n  - [x] done child\n- [x] half done\n  - [ ] open child\n- [ ] open parent\n  - [x] done child\n",
	}, md("a", "a.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatal(err)
	}
	rows := result.Values[0].(models.GroupNode).Rows

	want := []struct {
		text  string
		fully bool
	}{
		{"all done", true},
		{"half done", false},
		{"open parent", false},
	}
	for i, w := range want {
		rec := rows[i].(models.TaskNode).Record
		if rec.Text != w.text || rec.FullyCompleted != w.fully {
			t.Errorf("rows[%d] = %q fully=%v, want %q fully=%v", i, rec.Text, rec.FullyCompleted, w.text, w.fully)
		}
	}
}

func TestQueryNonTaskLineBreaksNesting(t *testing.T) {
	e := engineOver(map[string]string{
		"a.md": "- [ ] parent\n\nsome paragraph\n  - [ ] not a child\n",
	}, md("a", "a.md"))

	result, err := e.Query("TASK")
	if err != nil {
		t.Fatal(err)
	}
	rows := result.Values[0].(models.GroupNode).Rows
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 top-level tasks", len(rows))
	}
	if len(rows[0].(models.TaskNode).Children) != 0 {
		t.Error("paragraph should break parent/child nesting")
	}
}

func TestPagesSelector(t *testing.T) {
	tagged := md("bio", "Courses/bio.md")
	tagged.Tags = []string{"education"}
	other := md("misc", "misc.md")
	index := md("Courses", "Courses.md")

	e := &Engine{Store: &fakeStore{order: []models.PageMeta{tagged, other, index}}}

	pages, err := e.Pages(models.PageSelector{Tag: "education"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Path != "Courses/bio.md" {
		t.Errorf("tag selector: %+v", pages)
	}

	pages, err = e.Pages(models.PageSelector{Tag: "#education"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Errorf("tag selector should accept the # prefix: %+v", pages)
	}

	pages, err = e.Pages(models.PageSelector{Folder: "Courses"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Errorf("folder selector should match contents and namesake document: %+v", pages)
	}

	pages, err = e.Pages(models.PageSelector{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Errorf("empty selector should list everything: %+v", pages)
	}
}
