package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// ErrMeetingNotFound is returned when a point read misses
var ErrMeetingNotFound = errors.New("meeting record not found")

// meetingRow is the GORM model for the meetings table. Decisions and
// actions are serialized JSON columns decoded on read.
type meetingRow struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key"`
	Filename   string         `gorm:"type:varchar(500)"`
	AudioURL   string         `gorm:"type:text"`
	Transcript string         `gorm:"type:text"`
	Title      string         `gorm:"type:varchar(500);not null"`
	Summary    string         `gorm:"type:text"`
	Decisions  datatypes.JSON `gorm:"type:jsonb;not null"`
	Actions    datatypes.JSON `gorm:"type:jsonb;not null"`
	RawNotes   string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_meetings_created_at,sort:desc"`
}

// TableName specifies the table name for meetingRow
func (meetingRow) TableName() string {
	return "meetings"
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

// Insert persists a record as a single atomic write, assigning the id
// and the UTC creation timestamp. The assigned values are written back
// onto the passed record.
func (r *meetingRepository) Insert(ctx context.Context, record *entities.MeetingRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	row.ID = uuid.New()
	row.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert meeting record: %w", err)
	}

	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	var row meetingRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting record: %w", err)
	}
	return fromRow(&row)
}

func (r *meetingRepository) ListRecent(ctx context.Context, limit, offset int) ([]*entities.MeetingListItem, error) {
	var rows []meetingRow
	err := r.db.WithContext(ctx).
		Select("id", "filename", "title", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting records: %w", err)
	}

	items := make([]*entities.MeetingListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.MeetingListItem{
			ID:        row.ID,
			Filename:  row.Filename,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

// Ping reports whether the underlying database is reachable
func (r *meetingRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toRow(record *entities.MeetingRecord) (*meetingRow, error) {
	decisions := record.Decisions
	if decisions == nil {
		decisions = []string{}
	}
	actions := record.Actions
	if actions == nil {
		actions = []entities.ActionItem{}
	}

	decisionsJSON, err := json.Marshal(decisions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decisions: %w", err)
	}
	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode actions: %w", err)
	}

	return &meetingRow{
		Filename:   record.Filename,
		AudioURL:   record.AudioURL,
		Transcript: record.Transcript,
		Title:      record.Title,
		Summary:    record.Summary,
		Decisions:  datatypes.JSON(decisionsJSON),
		Actions:    datatypes.JSON(actionsJSON),
		RawNotes:   record.RawNotes,
	}, nil
}

func fromRow(row *meetingRow) (*entities.MeetingRecord, error) {
	decisions := []string{}
	if len(row.Decisions) > 0 {
		if err := json.Unmarshal(row.Decisions, &decisions); err != nil {
			return nil, fmt.Errorf("failed to decode decisions: %w", err)
		}
	}
	actions := []entities.ActionItem{}
	if len(row.Actions) > 0 {
		if err := json.Unmarshal(row.Actions, &actions); err != nil {
			return nil, fmt.Errorf("failed to decode actions: %w", err)
		}
	}

	return &entities.MeetingRecord{
		ID:         row.ID,
		Filename:   row.Filename,
		AudioURL:   row.AudioURL,
		Transcript: row.Transcript,
		Title:      row.Title,
		Summary:    row.Summary,
		Decisions:  decisions,
		Actions:    actions,
		RawNotes:   row.RawNotes,
		CreatedAt:  row.CreatedAt,
	}, nil
}
