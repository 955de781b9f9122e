package journal

import (
	"fmt"
	"regexp"
	"strings"
)

// taskLineRe matches checkbox task lines: - [ ] xxx, - [x] xxx, - [~] xxx,
// with optional leading whitespace. Uppercase X is accepted on input.
var taskLineRe = regexp.MustCompile(`^\s*-\s*\[([ xX~])\]\s*(.*)$`)

// Warning reports a line in the task section that could not be parsed as
// a task. Warnings are non-fatal: the line is dropped and parsing
// continues.
type Warning struct {
	// Line is the 1-based line number in the input.
	Line int
	// Text is the offending line.
	Text string
	// Reason describes why the line was skipped.
	Reason string
}

// String renders the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Reason, w.Text)
}

// Parse converts raw Markdown text into a Document. It never fails: a
// missing task section yields an empty task list, and malformed task
// lines are reported as warnings and skipped. The caller is responsible
// for setting the document date.
//
// For compatibility with files written by the predecessor tool, checkbox
// lines under "## 已废弃" are absorbed into the task list as abandoned,
// after the main section, with indices continuing in file order.
func Parse(raw string) (*Document, []Warning) {
	doc := &Document{}
	var warnings []Warning

	const (
		inPreamble = iota
		inTasks
		inAbandoned
		inOther
	)

	state := inPreamble
	sectionName := ""
	var body []string
	var abandoned []Task

	flush := func() {
		if state == inTasks || state == inAbandoned {
			body = nil
			return
		}
		text := trimBlankEdges(body)
		body = nil
		if text == "" && sectionName == "" {
			return
		}
		doc.Sections = append(doc.Sections, Section{Name: sectionName, Body: text})
	}

	for i, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "## ") {
			flush()
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			switch name {
			case TaskSectionName:
				state = inTasks
			case AbandonedSectionName:
				state = inAbandoned
			default:
				state = inOther
				sectionName = name
			}
			continue
		}

		switch state {
		case inPreamble:
			if doc.Title == "" && strings.HasPrefix(trimmed, "# ") {
				doc.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
				continue
			}
			body = append(body, line)
		case inTasks, inAbandoned:
			if trimmed == "" {
				continue
			}
			m := taskLineRe.FindStringSubmatch(line)
			if m == nil {
				warnings = append(warnings, Warning{
					Line:   i + 1,
					Text:   trimmed,
					Reason: "not a task line, skipped",
				})
				continue
			}
			status, _ := StatusForMarker(m[1])
			if state == inAbandoned {
				status = StatusAbandoned
			}
			desc := strings.TrimSpace(m[2])
			if desc == "" {
				warnings = append(warnings, Warning{
					Line:   i + 1,
					Text:   trimmed,
					Reason: "task line with empty description, skipped",
				})
				continue
			}
			t := Task{Description: desc, Status: status}
			if state == inAbandoned {
				abandoned = append(abandoned, t)
			} else {
				doc.Tasks = append(doc.Tasks, t)
			}
		case inOther:
			body = append(body, line)
		}
	}
	flush()

	doc.Tasks = append(doc.Tasks, abandoned...)
	doc.Renumber()
	return doc, warnings
}

// Serialize renders a Document back to Markdown: title, then the task
// section with one checkbox line per task in list order, then every
// other section in original order. Content that appeared before the
// first heading is kept between the title and the task section.
func Serialize(doc *Document) string {
	var b strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}
	if preamble, ok := doc.Section(""); ok && preamble != "" {
		b.WriteString(preamble)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", TaskSectionName)
	for _, t := range doc.Tasks {
		b.WriteString(t.Markdown())
		b.WriteString("\n")
	}

	for _, s := range doc.Sections {
		if s.Name == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", s.Name)
		if s.Body != "" {
			b.WriteString(s.Body)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Equal reports whether two documents carry the same content: title,
// tasks (description, status, order) and sections (name, body, order).
// Dates are not compared; they identify the backing file, not the content.
func Equal(a, b *Document) bool {
	if a.Title != b.Title || len(a.Tasks) != len(b.Tasks) || len(a.Sections) != len(b.Sections) {
		return false
	}
	for i := range a.Tasks {
		if a.Tasks[i] != b.Tasks[i] {
			return false
		}
	}
	for i := range a.Sections {
		if a.Sections[i] != b.Sections[i] {
			return false
		}
	}
	return true
}

// trimBlankEdges joins lines and strips leading and trailing blank
// lines, normalizing whitespace at block boundaries only.
func trimBlankEdges(lines []string) string {
	start := 0
	end := len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return strings.Join(out, "\n")
}
