// Package journal provides the structured model for one day's Markdown
// journal file and the codec that converts between raw Markdown text and
// that model.
//
// A day's file has a title heading, a task section (checkbox lines under
// "## 任务"), and any number of free-form sections that the tool does not
// interpret. The model keeps the free-form sections verbatim so that a
// parse/serialize cycle never loses user content.
//
// # Task Lines
//
// Only three checkbox forms are recognized inside the task section:
//
//   - [ ] description   (pending)
//   - [x] description   (done)
//   - [~] description   (abandoned)
//
// Any other line in the task section is skipped with a non-fatal
// [Warning]. Files written by the predecessor tool keep abandoned tasks
// in a separate "## 已废弃" section; the parser absorbs those into the
// task list, while serialization always emits the single canonical task
// section.
//
// # Round Trip
//
// For any document d produced by Parse, Parse(Serialize(d)) yields an
// equal document: same tasks, statuses, order, and section text. Only
// incidental whitespace may differ from the original input.
package journal
