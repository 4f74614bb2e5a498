package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meetings"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
)

// Router wires HTTP routes onto their handlers
type Router struct {
	meetingHandler *MeetingHandler
	meetingService *meetings.Service
	transcriber    summarizer.Transcriber
	completer      summarizer.Completer
	logger         *zap.Logger
}

func NewRouter(
	meetingHandler *MeetingHandler,
	meetingService *meetings.Service,
	transcriber summarizer.Transcriber,
	completer summarizer.Completer,
	logger *zap.Logger,
) *Router {
	return &Router{
		meetingHandler: meetingHandler,
		meetingService: meetingService,
		transcriber:    transcriber,
		completer:      completer,
		logger:         logger,
	}
}

// Setup registers all routes
func (r *Router) Setup(e *echo.Echo) {
	e.GET("/health", r.health)

	v1 := e.Group("/v1")
	v1.POST("/meetings", r.meetingHandler.Upload)
	v1.GET("/meetings", r.meetingHandler.List)
	v1.GET("/meetings/:id", r.meetingHandler.Get)
}

// health reports store reachability and collaborator configuration.
// A missing collaborator degrades status without failing the probe.
func (r *Router) health(c echo.Context) error {
	status := "ok"
	database := "ok"

	if err := r.meetingService.Health(c.Request().Context()); err != nil {
		status = "degraded"
		database = "unreachable"
		if r.logger != nil {
			r.logger.Warn("health probe: store unreachable", zap.Error(err))
		}
	}

	transcription := "configured"
	if !r.transcriber.Configured() {
		status = "degraded"
		transcription = "not configured"
	}

	summarization := "configured"
	if !r.completer.Configured() {
		status = "degraded"
		summarization = "not configured"
	}

	httpCode := http.StatusOK
	if status != "ok" {
		httpCode = http.StatusServiceUnavailable
	}

	return c.JSON(httpCode, map[string]string{
		"status":        status,
		"database":      database,
		"transcription": transcription,
		"summarization": summarization,
	})
}
