package entities

import (
	"time"

	"github.com/google/uuid"
)

// Default values applied when a field is absent from the model output
const (
	DefaultTitle    = "Untitled Meeting"
	DefaultAssignee = "Unassigned"
	DefaultDueDate  = "Not specified"
)

// MeetingRecord is the durable result of one processed upload. Records
// are written exactly once and never mutated afterwards.
type MeetingRecord struct {
	ID         uuid.UUID    `json:"id"`
	Filename   string       `json:"filename"`
	AudioURL   string       `json:"audio_url,omitempty"`
	Transcript string       `json:"transcript"`
	Title      string       `json:"title"`
	Summary    string       `json:"summary"`
	Decisions  []string     `json:"decisions"`
	Actions    []ActionItem `json:"actions"`
	RawNotes   string       `json:"raw_notes"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ActionItem is a single follow-up extracted from the model output
type ActionItem struct {
	Task      string `json:"task"`
	Assignee  string `json:"assignee"`
	DueDate   string `json:"due_date"`
	Rationale string `json:"rationale"`
}

// NewActionItem creates an action item with defaults for every field
// except the required task text.
func NewActionItem(task string) ActionItem {
	return ActionItem{
		Task:     task,
		Assignee: DefaultAssignee,
		DueDate:  DefaultDueDate,
	}
}

// MeetingListItem is the reduced projection returned by list views so
// full transcripts are not transferred for listings.
type MeetingListItem struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
