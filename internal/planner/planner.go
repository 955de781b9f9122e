// Package planner builds a day's initial task list from the prior day's
// document via the LLM oracle.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/llm"
)

// Planner produces fresh documents for a target date. It never merges
// with an existing document; overwrite confirmation is the caller's
// responsibility.
type Planner struct {
	oracle llm.Oracle
}

// New creates a planner backed by the given oracle.
func New(oracle llm.Oracle) *Planner {
	return &Planner{oracle: oracle}
}

// Plan returns a new document for date. If yesterday is nil or has no
// pending tasks there is nothing to carry over: the result has an empty
// task list and the date as title, and the oracle is not consulted.
// Otherwise yesterday's pending tasks and non-task notes are handed to
// the oracle, and every task line in its answer becomes a pending task
// in the new document. Which tasks carry over is the model's content
// decision, not enforced here.
func (p *Planner) Plan(ctx context.Context, date time.Time, yesterday *journal.Document) (*journal.Document, error) {
	doc := journal.NewDocument(date)

	var pending []string
	if yesterday != nil {
		for _, t := range yesterday.Pending() {
			pending = append(pending, t.Description)
		}
	}
	if len(pending) == 0 {
		return doc, nil
	}

	system, user := llm.GeneratePrompts(date.Format(journal.DateFormat), pending, sectionNotes(yesterday))
	raw, err := p.oracle.Chat(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", date.Format(journal.DateFormat), err)
	}

	for _, desc := range taskDescriptions(raw) {
		doc.AddTask(desc)
	}
	return doc, nil
}

// taskDescriptions extracts task texts from the model's Markdown answer,
// tolerating a missing section heading and a wrapping code fence.
func taskDescriptions(raw string) []string {
	text := llm.StripFence(raw)
	if !strings.Contains(text, "## "+journal.TaskSectionName) {
		text = "## " + journal.TaskSectionName + "\n\n" + text
	}
	parsed, _ := journal.Parse(text)

	var out []string
	for _, t := range parsed.Tasks {
		out = append(out, t.Description)
	}
	return out
}

// sectionNotes renders yesterday's non-task sections as background for
// the generation prompt.
func sectionNotes(doc *journal.Document) string {
	var parts []string
	for _, s := range doc.Sections {
		if s.Name == "" {
			parts = append(parts, s.Body)
			continue
		}
		parts = append(parts, fmt.Sprintf("## %s\n\n%s", s.Name, s.Body))
	}
	return strings.Join(parts, "\n\n")
}
