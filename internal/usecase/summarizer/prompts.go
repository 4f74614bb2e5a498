package summarizer

import (
	"fmt"
	"strings"
)

// summaryPromptTemplate is the fixed instruction sent alongside each
// transcript. It pins the output shape the parser expects; the parser
// still tolerates deviations since models do not always comply.
const summaryPromptTemplate = `You are a meeting summarizer assistant.

Task:
1) Produce a concise, structured meeting summary with a short title (1 line).
2) List key decisions / outcomes (bulleted, 1-5 items).
3) Extract action items as a numbered list. For each action include:
   - task (short)
   - assignee (if mentioned; else "Unassigned")
   - due_date (if mentioned; else "Not specified")
   - rationale (1 sentence)
4) Keep the whole output easy to copy/paste.

Transcript:
---
%s
---
Return the result as JSON with keys: title, summary, decisions (list of strings), action_items (list of objects with task, assignee, due_date, rationale).`

// BuildSummaryPrompt renders the summarization request for a transcript
func BuildSummaryPrompt(transcript string) string {
	return strings.TrimSpace(fmt.Sprintf(summaryPromptTemplate, transcript))
}
