package llm

import (
	"fmt"
	"strings"
)

// generateSystem instructs the model to carry yesterday's unfinished
// items into today's list, and nothing else.
const generateSystem = `你是每日日程助手。根据「昨天」未完成的事项，生成「今天」的任务列表。
要求：
1. 昨天未完成的事项必须全部迁移到今天，每行格式：- [ ] 任务描述
2. 只输出 Markdown：必须有 "## 任务" 标题，下面每行 - [ ]，不要代码块或多余说明
3. 不要添加列表以外的其他任务`

// GeneratePrompts builds the system and user prompts for planning a new
// day from yesterday's pending task descriptions. notes carries
// yesterday's non-task content (progress, remarks) as background the
// model may consult; it may be empty.
func GeneratePrompts(todayISO string, yesterdayPending []string, notes string) (system, user string) {
	pendingList := "（无）"
	if len(yesterdayPending) > 0 {
		var b strings.Builder
		for i, title := range yesterdayPending {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", title)
		}
		pendingList = b.String()
	}
	user = fmt.Sprintf("今天日期：%s\n\n昨天未完成的事项（须全部迁移到今天）：\n%s", todayISO, pendingList)
	if notes = strings.TrimSpace(notes); notes != "" {
		user += fmt.Sprintf("\n\n昨天的其他记录（仅供参考）：\n%s", notes)
	}
	return generateSystem, user
}

// intentSystem asks for a bare JSON object describing the edits. The
// field names are the contract decoded by the intent resolver.
const intentSystem = `你是一个任务列表解析助手。用户会给出当前日的任务列表（带序号和状态）和一句自然语言。
请理解用户意图，并输出一个 JSON 对象，且只输出该 JSON，不要用 markdown 代码块包裹。
字段说明：
- completed_indices: 用户要求「完成」的任务的序号列表（从 1 开始），如 [1, 3]
- abandoned_indices: 用户要求「废弃」的任务的序号列表，如 [2]
- reopened_indices: 用户要求「重新打开 / 恢复为待办」的任务的序号列表，如 [2]
- new_tasks: 用户要求「新增」的任务描述列表，如 ["写周报", "开会"]
- text_edits: 用户要求「修改」某任务描述时的列表，每项 { "index": 1, "new_title": "新描述" }
若某项没有则填空列表 [] 或省略该字段。`

// IntentPrompts builds the system and user prompts for resolving a
// free-form instruction against the rendered current task list.
func IntentPrompts(taskList, message string) (system, user string) {
	user = fmt.Sprintf("当前任务列表：\n\n%s\n\n用户说：%s", taskList, message)
	return intentSystem, user
}

const dailySummarySystem = "你是日程总结助手。根据当日日程 Markdown 写一句真实、简要的日总结（一两句话），只写事实与进展，不要空话。只输出总结正文，不要标题。"

// DailySummaryPrompts builds the prompts for summarizing one day's
// document content.
func DailySummaryPrompts(dateISO, content string) (system, user string) {
	if strings.TrimSpace(content) == "" {
		content = "（无内容）"
	}
	user = fmt.Sprintf("日期：%s\n\n内容：\n\n%s", dateISO, content)
	return dailySummarySystem, user
}

const weeklySummarySystem = "你是一个周报总结助手。下面是一周内几天的日程内容，请用简短中文做一周汇总总结，突出完成情况与重点。只输出总结正文。"

// WeeklyEntry is one day's contribution to a weekly summary prompt.
type WeeklyEntry struct {
	DateISO string
	Content string
}

// WeeklySummaryPrompts builds the prompts for summarizing up to seven
// days of documents. Callers must pass only the days that exist.
func WeeklySummaryPrompts(entries []WeeklyEntry) (system, user string) {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("## %s\n\n%s", e.DateISO, e.Content))
	}
	user = "一周日程：\n\n" + strings.Join(parts, "\n\n---\n\n")
	return weeklySummarySystem, user
}
