package repository

import (
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func TestRowMapping_RoundTripPreservesLists(t *testing.T) {
	record := &entities.MeetingRecord{
		Filename:   "planning.wav",
		AudioURL:   "https://cdn.example.com/audio/abc.wav",
		Transcript: "we discussed the roadmap",
		Title:      "Planning",
		Summary:    "roadmap review",
		Decisions:  []string{"b", "a", "b"},
		Actions: []entities.ActionItem{
			{Task: "Draft announcement", Assignee: "Carol", DueDate: "Monday", Rationale: "launch prep"},
			{Task: "Update runbook", Assignee: "Unassigned", DueDate: "Not specified", Rationale: ""},
		},
		RawNotes: "TITLE: Planning",
	}

	row, err := toRow(record)
	if err != nil {
		t.Fatalf("toRow failed: %v", err)
	}

	got, err := fromRow(row)
	if err != nil {
		t.Fatalf("fromRow failed: %v", err)
	}

	if got.Filename != record.Filename || got.AudioURL != record.AudioURL ||
		got.Transcript != record.Transcript || got.Title != record.Title ||
		got.Summary != record.Summary || got.RawNotes != record.RawNotes {
		t.Fatalf("scalar fields differ: %+v", got)
	}

	if len(got.Decisions) != len(record.Decisions) {
		t.Fatalf("expected %d decisions got %d", len(record.Decisions), len(got.Decisions))
	}
	for i, decision := range record.Decisions {
		if got.Decisions[i] != decision {
			t.Fatalf("decision %d: expected %q got %q (order must be preserved)", i, decision, got.Decisions[i])
		}
	}

	if len(got.Actions) != len(record.Actions) {
		t.Fatalf("expected %d actions got %d", len(record.Actions), len(got.Actions))
	}
	for i, action := range record.Actions {
		if got.Actions[i] != action {
			t.Fatalf("action %d: expected %+v got %+v", i, action, got.Actions[i])
		}
	}
}

func TestRowMapping_NilListsNormalizedToEmpty(t *testing.T) {
	row, err := toRow(&entities.MeetingRecord{Filename: "empty.wav", Title: entities.DefaultTitle})
	if err != nil {
		t.Fatalf("toRow failed: %v", err)
	}

	got, err := fromRow(row)
	if err != nil {
		t.Fatalf("fromRow failed: %v", err)
	}

	if got.Decisions == nil || len(got.Decisions) != 0 {
		t.Fatalf("expected empty decisions got %v", got.Decisions)
	}
	if got.Actions == nil || len(got.Actions) != 0 {
		t.Fatalf("expected empty actions got %v", got.Actions)
	}
}
