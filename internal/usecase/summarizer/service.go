package summarizer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Transcriber is the transcription collaborator boundary. Latency,
// timeout and retry policy live behind this interface, not here.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Configured() bool
}

// Completer is the summarization collaborator boundary: a stateless
// single-turn prompt/response exchange.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Archiver stores raw upload bytes in object storage and returns an
// accessible URL. Archival is best-effort and never fails a run.
type Archiver interface {
	ArchiveAudio(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// Service orchestrates one upload through the full pipeline:
// validate, transcribe, summarize, parse, persist.
type Service struct {
	transcriber Transcriber
	completer   Completer
	archiver    Archiver
	meetingRepo repositories.MeetingRepository
	parser      *Parser
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService constructs a pipeline service. The archiver may be nil
// when object storage is not configured.
func NewService(
	transcriber Transcriber,
	completer Completer,
	archiver Archiver,
	meetingRepo repositories.MeetingRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		transcriber: transcriber,
		completer:   completer,
		archiver:    archiver,
		meetingRepo: meetingRepo,
		parser:      NewParser(),
		cfg:         cfg,
		logger:      logger,
	}
}

// Process runs the full pipeline for one upload and returns the
// persisted record. Exactly one store insert happens per successful
// run and zero on any failure branch.
func (s *Service) Process(ctx context.Context, upload *entities.Upload) (*entities.MeetingRecord, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}
	if !s.transcriber.Configured() {
		return nil, apperrors.ErrServiceNotConfigured("transcription service")
	}
	if !s.completer.Configured() {
		return nil, apperrors.ErrServiceNotConfigured("summarization service")
	}

	// External calls run on a cancellation-detached context so an
	// aborted request does not orphan billed work mid-call. The
	// caller's context is re-checked between stages and before the
	// store write; an aborted run discards results without persisting.
	callCtx := context.WithoutCancel(ctx)

	audioURL := s.archiveUpload(callCtx, upload)

	transcript, err := s.transcriber.Transcribe(callCtx, upload.Data, upload.ContentType)
	if err != nil {
		return nil, apperrors.ErrTranscriptionFailed(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing aborted after transcription: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("transcript received",
			zap.String("filename", upload.Filename),
			zap.Int("transcript_length", len(transcript)),
		)
	}

	rawNotes, err := s.completer.Complete(callCtx, BuildSummaryPrompt(transcript))
	if err != nil {
		return nil, apperrors.ErrSummarizationFailed(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing aborted after summarization: %w", err)
	}

	// Parsing never fails the pipeline: a malformed model answer must
	// not discard a successful transcription.
	parsed := s.parser.Parse(rawNotes)

	record := &entities.MeetingRecord{
		Filename:   upload.Filename,
		AudioURL:   audioURL,
		Transcript: transcript,
		Title:      parsed.Title,
		Summary:    parsed.Summary,
		Decisions:  parsed.Decisions,
		Actions:    parsed.Actions,
		RawNotes:   parsed.Notes,
	}

	if err := s.meetingRepo.Insert(ctx, record); err != nil {
		return nil, apperrors.ErrStorageFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("meeting record persisted",
			zap.String("meeting_id", record.ID.String()),
			zap.String("title", record.Title),
			zap.Int("decision_count", len(record.Decisions)),
			zap.Int("action_count", len(record.Actions)),
		)
	}

	return record, nil
}

// validateUpload rejects uploads that cannot enter the pipeline.
// Runs before any collaborator call.
func (s *Service) validateUpload(upload *entities.Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return apperrors.ErrInvalidInput("upload is empty")
	}
	if int64(len(upload.Data)) > s.cfg.Upload.MaxBytes {
		return apperrors.ErrInvalidInput("upload exceeds the maximum allowed size").
			WithDetail("max_bytes", fmt.Sprintf("%d", s.cfg.Upload.MaxBytes))
	}
	if !s.cfg.AcceptsContentType(upload.ContentType) {
		return apperrors.ErrInvalidInput("unsupported audio content type").
			WithDetail("content_type", upload.ContentType)
	}
	return nil
}

// archiveUpload copies the raw audio to object storage. Failures are
// logged and ignored; the pipeline continues without an audio URL.
func (s *Service) archiveUpload(ctx context.Context, upload *entities.Upload) string {
	if s.archiver == nil {
		return ""
	}

	url, err := s.archiver.ArchiveAudio(ctx, upload.Filename, upload.Data, upload.ContentType)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to archive upload audio",
				zap.String("filename", upload.Filename),
				zap.Error(err),
			)
		}
		return ""
	}
	return url
}
