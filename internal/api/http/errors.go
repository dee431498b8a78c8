package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrDuplicateName), errors.Is(err, app.ErrDuplicateAction):
		return http.StatusConflict
	case errors.Is(err, app.ErrAppNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNotInstalled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrValidation),
		errors.Is(err, app.ErrUnknownSort),
		errors.Is(err, menu.ErrUnknownMenu),
		errors.Is(err, settings.ErrEmptyPath),
		errors.Is(err, settings.ErrPathNotFound),
		errors.Is(err, settings.ErrNotBool),
		errors.Is(err, settings.ErrNotLeaf),
		errors.Is(err, settings.ErrKindMismatch),
		errors.Is(err, settings.ErrDerivedPath),
		errors.Is(err, settings.ErrUnknownTheme):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server errors are logged and
// their detail is kept out of the response.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
