package journal

import "fmt"

// Status is the lifecycle state of a task. Transitions are total: any
// status may move to any other status, there is no terminal state.
type Status int

const (
	// StatusPending marks a task not yet done.
	StatusPending Status = iota
	// StatusDone marks a completed task.
	StatusDone
	// StatusAbandoned marks a task deliberately given up.
	StatusAbandoned
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Marker returns the checkbox character for the status: ' ', 'x' or '~'.
func (s Status) Marker() string {
	switch s {
	case StatusDone:
		return "x"
	case StatusAbandoned:
		return "~"
	default:
		return " "
	}
}

// StatusForMarker maps a checkbox character to its Status. The second
// return value is false for unrecognized markers.
func StatusForMarker(marker string) (Status, bool) {
	switch marker {
	case " ", "":
		return StatusPending, true
	case "x", "X":
		return StatusDone, true
	case "~":
		return StatusAbandoned, true
	default:
		return StatusPending, false
	}
}

// Task is one actionable line item in a day's journal.
type Task struct {
	// Index is the stable 1-based position within the document's task
	// list. It is recomputed from file order on every parse and after
	// every mutation batch; it is never persisted independently.
	Index int
	// Description is the task text. Never empty after trimming.
	Description string
	// Status is the current lifecycle state.
	Status Status
}

// Markdown renders the task as its canonical checkbox line.
func (t Task) Markdown() string {
	return fmt.Sprintf("- [%s] %s", t.Status.Marker(), t.Description)
}
