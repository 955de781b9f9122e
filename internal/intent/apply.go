package intent

import (
	"fmt"
	"strings"

	"github.com/luoxin/dailydo/internal/errors"
	"github.com/luoxin/dailydo/internal/journal"
)

// SkippedOp records one operation that could not be applied, with the
// reason it was skipped.
type SkippedOp struct {
	Op     Op
	Reason string
}

// String renders the skip for display as a warning.
func (s SkippedOp) String() string {
	return fmt.Sprintf("%s skipped: %s", s.Op, s.Reason)
}

// Apply executes ops strictly in order against a working copy of the
// document. Policy is best-effort with no rollback: a failed op is
// recorded in skipped and later ops still run. Add always succeeds,
// appends at the end, and extends the valid index range for later ops
// in the same batch. The returned document is final only after all ops
// have been attempted; callers serialize it even when some ops were
// skipped and surface the skips as warnings.
func Apply(doc *journal.Document, ops []Op) (*journal.Document, int, []SkippedOp) {
	work := doc.Clone()
	applied := 0
	var skipped []SkippedOp

	for _, op := range ops {
		if err := applyOne(work, op); err != nil {
			skipped = append(skipped, SkippedOp{Op: op, Reason: err.Error()})
			continue
		}
		applied++
	}

	work.Renumber()
	return work, applied, skipped
}

func applyOne(doc *journal.Document, op Op) error {
	switch op.Kind {
	case OpAdd:
		desc := strings.TrimSpace(op.Description)
		if desc == "" {
			return errors.NewValidationError(op.Kind.String(), 0, "empty description")
		}
		doc.AddTask(desc)
		return nil
	case OpComplete, OpAbandon, OpReopen, OpEdit:
		if op.Index < 1 || op.Index > len(doc.Tasks) {
			return errors.NewValidationError(op.Kind.String(), op.Index,
				fmt.Sprintf("index out of range [1, %d]", len(doc.Tasks)))
		}
		task := &doc.Tasks[op.Index-1]
		switch op.Kind {
		case OpComplete:
			task.Status = journal.StatusDone
		case OpAbandon:
			task.Status = journal.StatusAbandoned
		case OpReopen:
			task.Status = journal.StatusPending
		case OpEdit:
			desc := strings.TrimSpace(op.Description)
			if desc == "" {
				return errors.NewValidationError(op.Kind.String(), op.Index, "empty description")
			}
			task.Description = desc
		}
		return nil
	default:
		return errors.NewValidationError(op.Kind.String(), op.Index, "unknown operation")
	}
}
