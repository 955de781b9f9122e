package journal

import (
	"strings"
	"testing"
)

func TestParseTaskSection(t *testing.T) {
	raw := `# 2025-01-02

## 任务

- [ ] 开发CLI
- [x] 发布到PyPI
- [~] 旧需求调研
`
	doc, warnings := Parse(raw)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if doc.Title != "2025-01-02" {
		t.Errorf("Title = %q, want %q", doc.Title, "2025-01-02")
	}

	want := []Task{
		{Index: 1, Description: "开发CLI", Status: StatusPending},
		{Index: 2, Description: "发布到PyPI", Status: StatusDone},
		{Index: 3, Description: "旧需求调研", Status: StatusAbandoned},
	}
	if len(doc.Tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(doc.Tasks), len(want))
	}
	for i, w := range want {
		if doc.Tasks[i] != w {
			t.Errorf("task %d = %+v, want %+v", i, doc.Tasks[i], w)
		}
	}
}

func TestParseMissingTaskSection(t *testing.T) {
	raw := `# 2025-01-02

## 备注

今天有个客户会议。
`
	doc, warnings := Parse(raw)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(doc.Tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(doc.Tasks))
	}
	body, ok := doc.Section("备注")
	if !ok {
		t.Fatal("备注 section not captured")
	}
	if body != "今天有个客户会议。" {
		t.Errorf("body = %q", body)
	}
}

func TestParseMalformedTaskLines(t *testing.T) {
	raw := `## 任务

- [ ] 正常任务
* [ ] 错误的列表符号
随手写的一行
- [?] 未知标记
- [x]
`
	doc, warnings := Parse(raw)

	if len(doc.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1: %+v", len(doc.Tasks), doc.Tasks)
	}
	if doc.Tasks[0].Description != "正常任务" {
		t.Errorf("task = %q, want %q", doc.Tasks[0].Description, "正常任务")
	}
	if len(warnings) != 4 {
		t.Fatalf("got %d warnings, want 4: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if w.Line == 0 || w.Reason == "" {
			t.Errorf("warning missing context: %+v", w)
		}
	}
}

func TestParseLegacyAbandonedSection(t *testing.T) {
	raw := `# 2025-01-02

## 任务

- [ ] 开发CLI
- [x] 发布到PyPI

## 已废弃

- [ ] 旧需求调研
`
	doc, warnings := Parse(raw)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(doc.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(doc.Tasks))
	}
	last := doc.Tasks[2]
	if last.Status != StatusAbandoned {
		t.Errorf("legacy abandoned task has status %v, want %v", last.Status, StatusAbandoned)
	}
	if last.Index != 3 {
		t.Errorf("legacy abandoned task index = %d, want 3", last.Index)
	}
	if _, ok := doc.Section(AbandonedSectionName); ok {
		t.Error("已废弃 should be absorbed into the task list, not kept as a section")
	}
}

func TestParsePreservesSectionOrderAndBody(t *testing.T) {
	raw := `# 2025-01-02

## 任务

- [ ] 开发CLI

## 进展

上午完成了解析器。

下午开始写测试。

## 备注

记得提 PR。
`
	doc, _ := Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2: %+v", len(doc.Sections), doc.Sections)
	}
	if doc.Sections[0].Name != "进展" || doc.Sections[1].Name != "备注" {
		t.Errorf("section order = [%s, %s], want [进展, 备注]",
			doc.Sections[0].Name, doc.Sections[1].Name)
	}
	wantBody := "上午完成了解析器。\n\n下午开始写测试。"
	if doc.Sections[0].Body != wantBody {
		t.Errorf("进展 body = %q, want %q", doc.Sections[0].Body, wantBody)
	}
}

func TestSerializeEmptyDocument(t *testing.T) {
	doc := &Document{Title: "2025-01-02"}
	got := Serialize(doc)

	want := "# 2025-01-02\n\n## 任务\n\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeStatusMarkers(t *testing.T) {
	doc := &Document{
		Title: "2025-01-02",
		Tasks: []Task{
			{Index: 1, Description: "开发CLI", Status: StatusPending},
			{Index: 2, Description: "发布到PyPI", Status: StatusDone},
			{Index: 3, Description: "旧需求调研", Status: StatusAbandoned},
		},
	}
	got := Serialize(doc)

	for _, line := range []string{
		"- [ ] 开发CLI",
		"- [x] 发布到PyPI",
		"- [~] 旧需求调研",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Serialize() missing line %q in:\n%s", line, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "tasks only",
			raw:  "# 2025-01-02\n\n## 任务\n\n- [ ] 开发CLI\n- [x] 发布到PyPI\n",
		},
		{
			name: "tasks with other sections",
			raw: "# 2025-01-02\n\n## 任务\n\n- [ ] 开发CLI\n- [~] 调研\n\n" +
				"## 进展\n\n写了一半。\n\n## 日总结\n\n完成解析器初版。\n",
		},
		{
			name: "no title",
			raw:  "## 任务\n\n- [ ] 开发CLI\n",
		},
		{
			name: "preamble before first heading",
			raw:  "# 2025-01-02\n\n临时记录一句话。\n\n## 任务\n\n- [ ] 开发CLI\n",
		},
		{
			name: "legacy abandoned section",
			raw:  "# 2025-01-02\n\n## 任务\n\n- [ ] 开发CLI\n\n## 已废弃\n\n- [~] 调研\n",
		},
		{
			name: "empty task section",
			raw:  "# 2025-01-02\n\n## 任务\n\n\n## 备注\n\n别忘了周会。\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, _ := Parse(tt.raw)
			second, warnings := Parse(Serialize(first))
			if len(warnings) != 0 {
				t.Fatalf("reparse produced warnings: %v", warnings)
			}
			if !Equal(first, second) {
				t.Errorf("round trip changed document:\nfirst:  %+v\nsecond: %+v", first, second)
			}
		})
	}
}

func TestStatusMarkerMapping(t *testing.T) {
	tests := []struct {
		marker string
		want   Status
		ok     bool
	}{
		{" ", StatusPending, true},
		{"x", StatusDone, true},
		{"X", StatusDone, true},
		{"~", StatusAbandoned, true},
		{"?", StatusPending, false},
	}

	for _, tt := range tests {
		got, ok := StatusForMarker(tt.marker)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StatusForMarker(%q) = (%v, %v), want (%v, %v)",
				tt.marker, got, ok, tt.want, tt.ok)
		}
	}
}
