// Package summary builds daily and weekly summaries of journal
// documents via the LLM oracle.
package summary

import (
	"context"
	"fmt"

	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/llm"
)

// WindowDays is the length of the rolling weekly summary window.
const WindowDays = 7

// NoData is returned by Weekly when none of the seven days has a
// document: an explicit statement instead of invented content.
const NoData = "过去 7 天没有任何日程记录。"

// Aggregator produces free-text summaries from documents.
type Aggregator struct {
	oracle llm.Oracle
}

// New creates an aggregator backed by the given oracle.
func New(oracle llm.Oracle) *Aggregator {
	return &Aggregator{oracle: oracle}
}

// Daily summarizes one day's document: task list and all other sections
// are handed to the oracle, and its free-text answer is returned.
func (a *Aggregator) Daily(ctx context.Context, doc *journal.Document) (string, error) {
	dateISO := doc.Date.Format(journal.DateFormat)
	system, user := llm.DailySummaryPrompts(dateISO, journal.Serialize(doc))
	text, err := a.oracle.Chat(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("daily summary %s: %w", dateISO, err)
	}
	return text, nil
}

// Weekly summarizes a seven-slot window of documents ordered oldest
// first. Nil slots are days without a file and are skipped, not errors.
// If every slot is nil the oracle is not consulted and NoData is
// returned.
func (a *Aggregator) Weekly(ctx context.Context, docs []*journal.Document) (string, error) {
	var entries []llm.WeeklyEntry
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		entries = append(entries, llm.WeeklyEntry{
			DateISO: doc.Date.Format(journal.DateFormat),
			Content: journal.Serialize(doc),
		})
	}
	if len(entries) == 0 {
		return NoData, nil
	}

	system, user := llm.WeeklySummaryPrompts(entries)
	text, err := a.oracle.Chat(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("weekly summary: %w", err)
	}
	return text, nil
}
