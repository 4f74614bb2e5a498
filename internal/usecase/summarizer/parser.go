package summarizer

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Parser turns loosely-formatted model output into a validated
// ParsedNotes value. Parse is total: for any input it returns a usable
// result with documented defaults, and the full raw text is always
// retained in Notes. Model output shape is not contractually
// guaranteed, so this layer degrades instead of failing.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

const maxTitleLength = 120

// Parse extracts title, summary, decisions and action items from raw
// model output. Strategy: strict JSON decode first (the prompt asks
// for JSON), then labeled-section heuristics, then defaults.
func (p *Parser) Parse(raw string) *entities.ParsedNotes {
	result := &entities.ParsedNotes{
		Title:     entities.DefaultTitle,
		Summary:   "",
		Decisions: []string{},
		Actions:   []entities.ActionItem{},
		Notes:     raw,
	}

	if payload, ok := decodeJSONPayload(raw); ok {
		applyPayload(payload, result)
		return result
	}

	p.parseLabeledSections(raw, result)
	return result
}

// decodeJSONPayload attempts the strict path: locate a JSON object in
// the raw text (possibly inside a markdown code fence) and decode it.
func decodeJSONPayload(raw string) (map[string]interface{}, bool) {
	candidate := extractJSON(raw)
	if candidate == "" {
		return nil, false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// applyPayload maps decoded JSON onto the result. Each section is
// treated independently: a missing or malformed field keeps its
// default instead of discarding the rest of the response.
func applyPayload(payload map[string]interface{}, result *entities.ParsedNotes) {
	if title := stringField(payload, "title"); title != "" {
		result.Title = truncate(title, maxTitleLength)
	}
	if summary := stringField(payload, "summary"); summary != "" {
		result.Summary = summary
	}

	for _, item := range listField(payload, "decisions") {
		if decision, ok := normalizeDecision(item); ok {
			result.Decisions = append(result.Decisions, decision)
		}
	}

	items := listField(payload, "action_items")
	if len(items) == 0 {
		items = listField(payload, "actions")
	}
	for _, item := range items {
		if action, ok := normalizeAction(item); ok {
			result.Actions = append(result.Actions, action)
		}
	}
}

// parseLabeledSections is the heuristic fallback: locate recognizable
// section headers and collect their content line by line.
func (p *Parser) parseLabeledSections(raw string, result *entities.ParsedNotes) {
	var (
		section      string
		summaryLines []string
		titleSet     bool
	)

	for _, line := range strings.Split(raw, "\n") {
		if name, inline, ok := matchSectionHeader(line); ok {
			section = name
			if inline == "" {
				continue
			}
			line = inline
		} else if section == "" {
			continue
		}

		content := strings.TrimSpace(line)
		if content == "" {
			continue
		}

		switch section {
		case "title":
			if !titleSet {
				result.Title = truncate(content, maxTitleLength)
				titleSet = true
			}
		case "summary":
			summaryLines = append(summaryLines, content)
		case "decisions":
			item := stripListMarker(content)
			if item == "" || isNoneValue(item) {
				continue
			}
			result.Decisions = append(result.Decisions, item)
		case "actions":
			item := stripListMarker(content)
			if item == "" || isNoneValue(item) {
				continue
			}
			if action, ok := parseActionLine(item); ok {
				result.Actions = append(result.Actions, action)
			}
		}
	}

	if len(summaryLines) > 0 {
		result.Summary = strings.Join(summaryLines, "\n")
	}
}

// sectionHeaders maps recognized labels to canonical section names.
// Longer labels come first so "action items" wins over "actions".
var sectionHeaders = []struct {
	label   string
	section string
}{
	{"action items", "actions"},
	{"action_items", "actions"},
	{"actions", "actions"},
	{"decisions", "decisions"},
	{"summary", "summary"},
	{"title", "title"},
	{"notes", "notes"},
}

// matchSectionHeader reports whether the line opens a recognized
// section, returning any value that follows the label on the same
// line (e.g. "TITLE: Sync").
func matchSectionHeader(line string) (section, inline string, ok bool) {
	cleaned := strings.TrimSpace(line)
	cleaned = strings.TrimLeft(cleaned, "#")
	cleaned = strings.Trim(cleaned, "* ")
	lower := strings.ToLower(cleaned)

	for _, h := range sectionHeaders {
		if !strings.HasPrefix(lower, h.label) {
			continue
		}
		rest := strings.TrimSpace(cleaned[len(h.label):])
		if rest == "" {
			return h.section, "", true
		}
		if rest[0] != ':' && rest[0] != '-' {
			continue
		}
		inline = strings.TrimSpace(strings.TrimLeft(rest, ":- "))
		return h.section, inline, true
	}
	return "", "", false
}

// actionSeparators are tried in order; the first one present in the
// line is used to split it into task / assignee / due date / rationale.
var actionSeparators = []string{" — ", " – ", " | ", " - "}

// parseActionLine extracts up to four fields from a candidate action
// line. A line yielding no task text is discarded, not defaulted.
func parseActionLine(line string) (entities.ActionItem, bool) {
	parts := []string{line}
	for _, sep := range actionSeparators {
		if strings.Contains(line, sep) {
			parts = strings.Split(line, sep)
			break
		}
	}

	task := strings.TrimSpace(parts[0])
	if task == "" {
		return entities.ActionItem{}, false
	}

	action := entities.NewActionItem(task)
	if len(parts) > 1 {
		if assignee := strings.TrimSpace(parts[1]); assignee != "" {
			action.Assignee = assignee
		}
	}
	if len(parts) > 2 {
		if due := strings.TrimSpace(parts[2]); due != "" {
			action.DueDate = due
		}
	}
	if len(parts) > 3 {
		// Extra separators belong to the rationale text
		if rationale := strings.TrimSpace(strings.Join(parts[3:], " - ")); rationale != "" {
			action.Rationale = rationale
		}
	}
	return action, true
}

// normalizeDecision converts a decoded JSON list element into a
// decision string, accepting both plain strings and objects.
func normalizeDecision(item interface{}) (string, bool) {
	switch v := item.(type) {
	case string:
		decision := strings.TrimSpace(v)
		if decision == "" || isNoneValue(decision) {
			return "", false
		}
		return decision, true
	case map[string]interface{}:
		for _, key := range []string{"decision", "decision_text", "text", "description"} {
			if decision := stringField(v, key); decision != "" && !isNoneValue(decision) {
				return decision, true
			}
		}
	}
	return "", false
}

// normalizeAction converts a decoded JSON list element into an
// ActionItem, tolerating alternative key names the model may emit.
func normalizeAction(item interface{}) (entities.ActionItem, bool) {
	switch v := item.(type) {
	case string:
		line := stripListMarker(strings.TrimSpace(v))
		if line == "" || isNoneValue(line) {
			return entities.ActionItem{}, false
		}
		return parseActionLine(line)
	case map[string]interface{}:
		task := firstStringField(v, "task", "title", "description")
		if task == "" {
			return entities.ActionItem{}, false
		}
		action := entities.NewActionItem(task)
		if assignee := firstStringField(v, "assignee", "assigned_to", "owner"); assignee != "" {
			action.Assignee = assignee
		}
		if due := firstStringField(v, "due_date", "due", "deadline"); due != "" {
			action.DueDate = due
		}
		if rationale := firstStringField(v, "rationale", "reason"); rationale != "" {
			action.Rationale = rationale
		}
		return action, true
	}
	return entities.ActionItem{}, false
}

// extractJSON extracts a JSON object from markdown code blocks or
// plain text. Returns "" when no object boundaries are found.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

// stripListMarker removes leading bullet or numbering markers
func stripListMarker(line string) string {
	line = strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• ", "– "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}

	// Numbered lists: "1. task" or "2) task"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// isNoneValue reports whether a section value is a placeholder the
// model emits for empty sections.
func isNoneValue(value string) bool {
	switch strings.ToLower(strings.TrimRight(strings.TrimSpace(value), ".")) {
	case "none", "n/a", "na", "-", "nothing", "no decisions", "no action items", "no actions":
		return true
	}
	return false
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func firstStringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v := stringField(m, key); v != "" {
			return v
		}
	}
	return ""
}

func listField(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
