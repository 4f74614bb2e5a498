package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meetings"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
)

// MeetingHandler exposes the upload pipeline and record retrieval
// over HTTP.
type MeetingHandler struct {
	summarizerService *summarizer.Service
	meetingService    *meetings.Service
	logger            *zap.Logger
}

func NewMeetingHandler(summarizerService *summarizer.Service, meetingService *meetings.Service, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{
		summarizerService: summarizerService,
		meetingService:    meetingService,
		logger:            logger,
	}
}

// Upload accepts one multipart audio file under the "file" field, runs
// it through the pipeline and returns the persisted record.
func (h *MeetingHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidInput("missing audio file in \"file\" form field"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidInput("could not open uploaded file"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrInternal(err))
	}

	upload := &entities.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	record, err := h.summarizerService.Process(c.Request().Context(), upload)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, http.StatusCreated, dto.NewMeetingResponse(record))
}

// List returns recent meetings, most recent first
func (h *MeetingHandler) List(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidInput("invalid list parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidInput("invalid list parameters"))
	}

	items, err := h.meetingService.ListRecent(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, http.StatusOK, dto.NewMeetingListResponse(items))
}

// Get returns the full record for one meeting id
func (h *MeetingHandler) Get(c echo.Context) error {
	record, err := h.meetingService.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, http.StatusOK, dto.NewMeetingResponse(record))
}
