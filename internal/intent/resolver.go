package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luoxin/dailydo/internal/journal"
	"github.com/luoxin/dailydo/internal/llm"
)

// Resolver turns free-form instructions into validated mutation ops
// using an LLM oracle.
type Resolver struct {
	oracle llm.Oracle
}

// NewResolver creates a resolver backed by the given oracle.
func NewResolver(oracle llm.Oracle) *Resolver {
	return &Resolver{oracle: oracle}
}

// Result is the outcome of resolving one instruction. Ops are in the
// order the model produced them; Unresolved holds candidates (or the
// whole instruction) that could not be turned into valid operations,
// each with a descriptive reason.
type Result struct {
	Ops        []Op
	Unresolved []string
}

// intentPayload is the JSON contract the model is asked to produce.
// Candidate order within the payload is fixed by field grouping, so the
// resolver emits ops in that same grouping order: completions,
// abandonments, reopens, edits, then adds.
type intentPayload struct {
	CompletedIndices []int    `json:"completed_indices"`
	AbandonedIndices []int    `json:"abandoned_indices"`
	ReopenedIndices  []int    `json:"reopened_indices"`
	NewTasks         []string `json:"new_tasks"`
	TextEdits        []struct {
		Index    int    `json:"index"`
		NewTitle string `json:"new_title"`
	} `json:"text_edits"`
}

// Resolve interprets one free-form instruction against the current task
// list. The only error it returns is an upstream failure talking to the
// oracle; an undecodable model response is a resolver-level failure
// reported through Result.Unresolved with zero ops.
func (r *Resolver) Resolve(ctx context.Context, message string, tasks []journal.Task) (Result, error) {
	system, user := llm.IntentPrompts(renderTaskList(tasks), message)
	raw, err := r.oracle.Chat(ctx, system, user)
	if err != nil {
		return Result{}, fmt.Errorf("resolve intent: %w", err)
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(llm.StripFence(raw)), &payload); err != nil {
		return Result{
			Unresolved: []string{fmt.Sprintf("%q: model response is not valid intent JSON", message)},
		}, nil
	}

	return validate(payload, len(tasks)), nil
}

// validate checks every candidate independently against the current
// task-list window. Invalid candidates go to Unresolved and do not
// abort the rest; valid candidates keep their payload order.
func validate(payload intentPayload, taskCount int) Result {
	var res Result

	checkIndex := func(op Op) {
		if op.Index < 1 || op.Index > taskCount {
			res.Unresolved = append(res.Unresolved,
				fmt.Sprintf("%s: index %d out of range [1, %d]", op, op.Index, taskCount))
			return
		}
		res.Ops = append(res.Ops, op)
	}

	for _, i := range payload.CompletedIndices {
		checkIndex(Complete(i))
	}
	for _, i := range payload.AbandonedIndices {
		checkIndex(Abandon(i))
	}
	for _, i := range payload.ReopenedIndices {
		checkIndex(Reopen(i))
	}
	for _, e := range payload.TextEdits {
		title := strings.TrimSpace(e.NewTitle)
		if title == "" {
			res.Unresolved = append(res.Unresolved,
				fmt.Sprintf("edit(%d): empty description", e.Index))
			continue
		}
		checkIndex(Edit(e.Index, title))
	}
	for _, title := range payload.NewTasks {
		title = strings.TrimSpace(title)
		if title == "" {
			res.Unresolved = append(res.Unresolved, "add: empty description")
			continue
		}
		// Duplicates are allowed: adding the same description twice is
		// the user's stated intent.
		res.Ops = append(res.Ops, Add(title))
	}

	return res
}

// renderTaskList formats tasks as "index. [status] description" lines
// so the model can ground both positional and textual references.
func renderTaskList(tasks []journal.Task) string {
	if len(tasks) == 0 {
		return "（暂无任务）"
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", t.Index, t.Status, t.Description))
	}
	return strings.Join(lines, "\n")
}
