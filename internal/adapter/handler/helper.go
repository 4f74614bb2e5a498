package handler

import (
	stderrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
)

type successResponse struct {
	Code    int32       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Code    int32             `json:"code"`
	Message string            `json:"message"`
	Info    map[string]string `json:"info,omitempty"`
}

// HandleSuccess writes the standard success envelope
func HandleSuccess(c echo.Context, logger *zap.Logger, httpCode int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("path", c.Path()),
			zap.String("method", c.Request().Method),
			zap.Int("status", httpCode),
		)
	}
	return c.JSON(httpCode, successResponse{
		Code:    int32(apperrors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	})
}

// HandleError maps an AppError onto the error envelope. Unknown error
// types collapse to an internal error so raw messages never leak.
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr apperrors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = apperrors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("path", c.Path()),
			zap.String("method", c.Request().Method),
			zap.Int("status", appErr.HTTPCode),
			zap.String("code", appErr.Code.String()),
			zap.Error(appErr),
		)
	}

	return c.JSON(appErr.HTTPCode, errorResponse{
		Code:    int32(appErr.Code),
		Message: appErr.Message,
		Info:    appErr.Details,
	})
}
