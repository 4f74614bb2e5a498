package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MeetingResponse is the full API view of a processed meeting
type MeetingResponse struct {
	ID         uuid.UUID       `json:"id"`
	Filename   string          `json:"filename"`
	AudioURL   string          `json:"audio_url,omitempty"`
	Transcript string          `json:"transcript"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Decisions  []string        `json:"decisions"`
	Actions    []ActionItemDTO `json:"actions"`
	RawNotes   string          `json:"raw_notes"`
	CreatedAt  string          `json:"created_at"`
}

// ActionItemDTO is one extracted follow-up
type ActionItemDTO struct {
	Task      string `json:"task"`
	Assignee  string `json:"assignee"`
	DueDate   string `json:"due_date"`
	Rationale string `json:"rationale"`
}

// MeetingListItemResponse is the reduced projection used by listings
type MeetingListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"created_at"`
}

// ListMeetingsRequest carries list query parameters
type ListMeetingsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// NewMeetingResponse maps a record to its API view. Timestamps render
// as ISO-8601 UTC.
func NewMeetingResponse(record *entities.MeetingRecord) *MeetingResponse {
	actions := make([]ActionItemDTO, 0, len(record.Actions))
	for _, a := range record.Actions {
		actions = append(actions, ActionItemDTO{
			Task:      a.Task,
			Assignee:  a.Assignee,
			DueDate:   a.DueDate,
			Rationale: a.Rationale,
		})
	}

	decisions := record.Decisions
	if decisions == nil {
		decisions = []string{}
	}

	return &MeetingResponse{
		ID:         record.ID,
		Filename:   record.Filename,
		AudioURL:   record.AudioURL,
		Transcript: record.Transcript,
		Title:      record.Title,
		Summary:    record.Summary,
		Decisions:  decisions,
		Actions:    actions,
		RawNotes:   record.RawNotes,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewMeetingListResponse maps list projections to their API view
func NewMeetingListResponse(items []*entities.MeetingListItem) []MeetingListItemResponse {
	out := make([]MeetingListItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, MeetingListItemResponse{
			ID:        item.ID,
			Filename:  item.Filename,
			Title:     item.Title,
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
