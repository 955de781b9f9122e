package journal

import "time"

// Section heading names the tool understands. Everything else is carried
// verbatim as opaque content.
const (
	// TaskSectionName heads the checkbox task list.
	TaskSectionName = "任务"
	// AbandonedSectionName heads the legacy abandoned-task list. Read
	// for compatibility, never written.
	AbandonedSectionName = "已废弃"
	// SummarySectionName heads the daily summary block.
	SummarySectionName = "日总结"
)

// DateFormat is the layout for journal dates and file names.
const DateFormat = "2006-01-02"

// Section is one non-task block of a journal document: a heading name
// and its raw body text. A Section with an empty Name holds content that
// appeared before the first heading.
type Section struct {
	Name string
	Body string
}

// Document is the structured representation of one day's journal file.
// It is created by parsing an existing file or by the planner, mutated
// in memory, and discarded once serialized; no instance outlives a
// single command invocation.
type Document struct {
	// Date identifies the document and its backing file.
	Date time.Time
	// Title is the optional heading text (without the "# " prefix).
	Title string
	// Tasks is the ordered task list. Order is file order and must be
	// preserved across parse/serialize/mutate cycles.
	Tasks []Task
	// Sections holds all non-task content in original order.
	Sections []Section
}

// NewDocument returns an empty document for the given date with the
// date as its title.
func NewDocument(date time.Time) *Document {
	return &Document{
		Date:  date,
		Title: date.Format(DateFormat),
	}
}

// Clone returns a deep copy of the document. The applier mutates a clone
// so a failed batch never leaves the caller's document half-updated.
func (d *Document) Clone() *Document {
	out := &Document{
		Date:  d.Date,
		Title: d.Title,
	}
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		copy(out.Tasks, d.Tasks)
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		copy(out.Sections, d.Sections)
	}
	return out
}

// AddTask appends a new pending task and returns it. Duplicate
// descriptions are allowed.
func (d *Document) AddTask(description string) Task {
	t := Task{
		Index:       len(d.Tasks) + 1,
		Description: description,
		Status:      StatusPending,
	}
	d.Tasks = append(d.Tasks, t)
	return t
}

// Renumber recomputes 1-based task indices from list order.
func (d *Document) Renumber() {
	for i := range d.Tasks {
		d.Tasks[i].Index = i + 1
	}
}

// Pending returns the tasks still in pending state, in list order.
func (d *Document) Pending() []Task {
	var out []Task
	for _, t := range d.Tasks {
		if t.Status == StatusPending {
			out = append(out, t)
		}
	}
	return out
}

// Section returns the body of the named section and whether it exists.
func (d *Document) Section(name string) (string, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s.Body, true
		}
	}
	return "", false
}

// SetSection replaces the body of the named section, or appends a new
// section if the name is not present. Existing section order is kept.
func (d *Document) SetSection(name, body string) {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			d.Sections[i].Body = body
			return
		}
	}
	d.Sections = append(d.Sections, Section{Name: name, Body: body})
}
