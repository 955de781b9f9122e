package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/luoxin/dailydo/internal/journal"
)

type stubOracle struct {
	response string
	calls    int
	user     string
}

func (s *stubOracle) Chat(_ context.Context, _, user string) (string, error) {
	s.calls++
	s.user = user
	return s.response, nil
}

func dayDoc(day int, task string) *journal.Document {
	doc := journal.NewDocument(time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC))
	doc.AddTask(task)
	return doc
}

func TestDailyIncludesTasksAndSections(t *testing.T) {
	oracle := &stubOracle{response: "完成了解析器。"}
	a := New(oracle)

	doc := dayDoc(2, "开发CLI")
	doc.SetSection("进展", "解析器写完了。")

	got, err := a.Daily(context.Background(), doc)
	if err != nil {
		t.Fatalf("Daily() error: %v", err)
	}
	if got != "完成了解析器。" {
		t.Errorf("Daily() = %q", got)
	}
	for _, want := range []string{"2025-01-02", "开发CLI", "解析器写完了。"} {
		if !strings.Contains(oracle.user, want) {
			t.Errorf("prompt missing %q:\n%s", want, oracle.user)
		}
	}
}

func TestWeeklySkipsMissingDays(t *testing.T) {
	oracle := &stubOracle{response: "一周总结。"}
	a := New(oracle)

	docs := make([]*journal.Document, WindowDays)
	docs[1] = dayDoc(2, "开发CLI")
	docs[5] = dayDoc(6, "发布")

	got, err := a.Weekly(context.Background(), docs)
	if err != nil {
		t.Fatalf("Weekly() error: %v", err)
	}
	if got != "一周总结。" {
		t.Errorf("Weekly() = %q", got)
	}
	if oracle.calls != 1 {
		t.Errorf("oracle calls = %d, want 1", oracle.calls)
	}
	if !strings.Contains(oracle.user, "2025-01-02") || !strings.Contains(oracle.user, "2025-01-06") {
		t.Errorf("prompt missing present days:\n%s", oracle.user)
	}
	if strings.Contains(oracle.user, "2025-01-03") {
		t.Errorf("prompt mentions a missing day:\n%s", oracle.user)
	}
}

func TestWeeklyAllMissing(t *testing.T) {
	oracle := &stubOracle{}
	a := New(oracle)

	got, err := a.Weekly(context.Background(), make([]*journal.Document, WindowDays))
	if err != nil {
		t.Fatalf("Weekly() error: %v", err)
	}
	if got != NoData {
		t.Errorf("Weekly() = %q, want NoData", got)
	}
	if oracle.calls != 0 {
		t.Errorf("oracle calls = %d, want 0", oracle.calls)
	}
}

func TestWeeklyAllMissingWithoutOracle(t *testing.T) {
	// Callers may skip building a client for an empty week, so the
	// no-data path must not touch the oracle at all.
	a := New(nil)

	got, err := a.Weekly(context.Background(), make([]*journal.Document, WindowDays))
	if err != nil {
		t.Fatalf("Weekly() error: %v", err)
	}
	if got != NoData {
		t.Errorf("Weekly() = %q, want NoData", got)
	}
}
