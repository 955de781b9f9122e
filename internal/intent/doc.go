// Package intent translates free-form natural-language instructions into
// validated mutations of a day's task list, and applies them.
//
// The [Resolver] delegates interpretation to an [llm.Oracle], supplying
// the full current task list (index, status, description) so the model
// can ground references like "第1项". The model's structured answer is
// untrusted: every candidate operation is validated independently, and
// invalid candidates are reported as unresolved without aborting the
// rest. Candidates are never reordered.
//
// [Apply] then executes the operations strictly in order against a
// working copy of the document, best-effort with no rollback: a skipped
// operation is recorded with its reason and later operations still run.
// Add always succeeds and appends, extending the valid index range for
// later operations in the same batch.
package intent
