package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meeting records.
// Insert assigns the record id and UTC creation timestamp atomically;
// a record is either fully visible or not present at all.
type MeetingRepository interface {
	Insert(ctx context.Context, record *entities.MeetingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*entities.MeetingListItem, error)
	Ping(ctx context.Context) error
}
