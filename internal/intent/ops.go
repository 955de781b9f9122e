package intent

import "fmt"

// OpKind identifies one kind of task-list mutation.
type OpKind int

const (
	// OpComplete marks a task done.
	OpComplete OpKind = iota
	// OpAbandon marks a task abandoned.
	OpAbandon
	// OpReopen returns a task to pending.
	OpReopen
	// OpEdit replaces a task's description.
	OpEdit
	// OpAdd appends a new pending task.
	OpAdd
)

// String returns the string representation of the op kind.
func (k OpKind) String() string {
	switch k {
	case OpComplete:
		return "complete"
	case OpAbandon:
		return "abandon"
	case OpReopen:
		return "reopen"
	case OpEdit:
		return "edit"
	case OpAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Op is one atomic edit to a task list. Ops are ephemeral: produced by
// the resolver and consumed by the applier within one command
// invocation, never persisted.
type Op struct {
	Kind OpKind
	// Index is the 1-based task position for Complete/Abandon/Reopen/Edit.
	// Unused for Add.
	Index int
	// Description is the new text for Edit and the task text for Add.
	Description string
}

// Complete builds a status-only op marking task i done.
func Complete(i int) Op { return Op{Kind: OpComplete, Index: i} }

// Abandon builds a status-only op marking task i abandoned.
func Abandon(i int) Op { return Op{Kind: OpAbandon, Index: i} }

// Reopen builds a status-only op returning task i to pending.
func Reopen(i int) Op { return Op{Kind: OpReopen, Index: i} }

// Edit builds an op replacing task i's description.
func Edit(i int, description string) Op {
	return Op{Kind: OpEdit, Index: i, Description: description}
}

// Add builds an op appending a new pending task.
func Add(description string) Op {
	return Op{Kind: OpAdd, Description: description}
}

// String renders the op for warnings and logs.
func (o Op) String() string {
	switch o.Kind {
	case OpEdit:
		return fmt.Sprintf("edit(%d, %q)", o.Index, o.Description)
	case OpAdd:
		return fmt.Sprintf("add(%q)", o.Description)
	default:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Index)
	}
}
