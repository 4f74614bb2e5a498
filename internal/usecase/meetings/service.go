package meetings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// Service is the read-only seam between the presentation layer and
// the meeting record store. Records are immutable after insert, so
// point reads go through an optional cache.
type Service struct {
	meetingRepo repositories.MeetingRepository
	cache       cache.Store
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewService constructs a retrieval service. The cache may be nil.
func NewService(meetingRepo repositories.MeetingRepository, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		cache:       store,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ListRecent returns up to n meeting summaries, most recent first
func (s *Service) ListRecent(ctx context.Context, n, offset int) ([]*entities.MeetingListItem, error) {
	if n <= 0 {
		n = defaultListLimit
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.meetingRepo.ListRecent(ctx, n, offset)
	if err != nil {
		return nil, apperrors.ErrStorageFailed(err)
	}
	return items, nil
}

// GetOne returns the full record for an id. A malformed or unknown id
// is reported as not found.
func (s *Service) GetOne(ctx context.Context, id string) (*entities.MeetingRecord, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrNotFound("meeting")
	}

	if record, ok := s.cacheLookup(ctx, recordID); ok {
		return record, nil
	}

	record, err := s.meetingRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return nil, apperrors.ErrNotFound("meeting")
		}
		return nil, apperrors.ErrStorageFailed(err)
	}

	s.cacheStore(ctx, record)
	return record, nil
}

// Health reports whether the store is reachable
func (s *Service) Health(ctx context.Context) error {
	return s.meetingRepo.Ping(ctx)
}

func cacheKey(id uuid.UUID) string {
	return "meeting:" + id.String()
}

func (s *Service) cacheLookup(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	encoded, ok := s.cache.Get(ctx, cacheKey(id))
	if !ok {
		return nil, false
	}

	var record entities.MeetingRecord
	if err := json.Unmarshal([]byte(encoded), &record); err != nil {
		if s.logger != nil {
			s.logger.Warn("dropping undecodable cache entry",
				zap.String("meeting_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return &record, true
}

func (s *Service) cacheStore(ctx context.Context, record *entities.MeetingRecord) {
	if s.cache == nil {
		return
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return
	}
	s.cache.Set(ctx, cacheKey(record.ID), string(encoded), s.cacheTTL)
}
