package journal

import (
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	doc := NewDocument(date)

	if doc.Title != "2025-01-02" {
		t.Errorf("Title = %q, want %q", doc.Title, "2025-01-02")
	}
	if len(doc.Tasks) != 0 {
		t.Errorf("new document should have no tasks, got %d", len(doc.Tasks))
	}
}

func TestAddTaskAppendsPending(t *testing.T) {
	doc := &Document{
		Tasks: []Task{
			{Index: 1, Description: "开发CLI", Status: StatusDone},
		},
	}

	got := doc.AddTask("写周报")

	if got.Index != 2 {
		t.Errorf("Index = %d, want 2", got.Index)
	}
	if got.Status != StatusPending {
		t.Errorf("Status = %v, want %v", got.Status, StatusPending)
	}
	if doc.Tasks[1].Description != "写周报" {
		t.Errorf("task not appended: %+v", doc.Tasks)
	}

	// Duplicate descriptions are allowed.
	doc.AddTask("写周报")
	if len(doc.Tasks) != 3 {
		t.Errorf("duplicate add rejected, got %d tasks", len(doc.Tasks))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := &Document{
		Title: "2025-01-02",
		Tasks: []Task{
			{Index: 1, Description: "开发CLI", Status: StatusPending},
		},
		Sections: []Section{
			{Name: "备注", Body: "原始内容"},
		},
	}

	clone := doc.Clone()
	clone.Tasks[0].Status = StatusDone
	clone.SetSection("备注", "改过的内容")
	clone.AddTask("新任务")

	if doc.Tasks[0].Status != StatusPending {
		t.Error("mutating clone changed original task status")
	}
	if body, _ := doc.Section("备注"); body != "原始内容" {
		t.Errorf("mutating clone changed original section: %q", body)
	}
	if len(doc.Tasks) != 1 {
		t.Errorf("mutating clone changed original task count: %d", len(doc.Tasks))
	}
}

func TestPending(t *testing.T) {
	doc := &Document{
		Tasks: []Task{
			{Index: 1, Description: "a", Status: StatusDone},
			{Index: 2, Description: "b", Status: StatusPending},
			{Index: 3, Description: "c", Status: StatusAbandoned},
			{Index: 4, Description: "d", Status: StatusPending},
		},
	}

	got := doc.Pending()
	if len(got) != 2 {
		t.Fatalf("got %d pending, want 2", len(got))
	}
	if got[0].Description != "b" || got[1].Description != "d" {
		t.Errorf("pending = %+v, want b then d", got)
	}
}

func TestSetSection(t *testing.T) {
	doc := &Document{
		Sections: []Section{
			{Name: "进展", Body: "上午"},
			{Name: "备注", Body: "x"},
		},
	}

	doc.SetSection("进展", "上午和下午")
	doc.SetSection(SummarySectionName, "总结文本")

	if doc.Sections[0].Name != "进展" || doc.Sections[0].Body != "上午和下午" {
		t.Errorf("replace in place failed: %+v", doc.Sections)
	}
	if doc.Sections[2].Name != SummarySectionName {
		t.Errorf("new section should append at the end: %+v", doc.Sections)
	}
}

func TestRenumber(t *testing.T) {
	doc := &Document{
		Tasks: []Task{
			{Index: 9, Description: "a"},
			{Index: 0, Description: "b"},
		},
	}
	doc.Renumber()

	for i, task := range doc.Tasks {
		if task.Index != i+1 {
			t.Errorf("task %d has index %d, want %d", i, task.Index, i+1)
		}
	}
}
