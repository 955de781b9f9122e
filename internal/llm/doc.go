// Package llm provides the language-model capability consumed by the
// intent resolver, the planner, and the summarizer.
//
// The capability is abstracted as the [Oracle] interface: a single
// synchronous chat operation taking a system prompt and a user prompt
// and returning the assistant text. The default implementation is
// [Client], an OpenAI-compatible chat-completions client; tests use
// scripted oracles instead.
//
// Prompt text for the three product features lives in prompts.go so the
// callers stay free of wording concerns.
package llm
