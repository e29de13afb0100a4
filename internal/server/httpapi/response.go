package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/logging"
	"github.com/microstory/server/internal/shared"
)

// respond writes the success envelope. Payload keys are merged next to the
// success flag so clients read flat objects.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError maps domain errors onto HTTP statuses in one place. Anything
// unrecognized is a 500 whose detail is logged but never sent to the client.
func respondError(c *gin.Context, logger logging.Logger, err error) {
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "field": ve.Field, "message": ve.Field + " " + ve.Msg})
		return
	}

	switch {
	case errors.Is(err, shared.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "field": "email", "message": shared.ErrDuplicateEmail.Error()})
	case errors.Is(err, shared.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": shared.ErrInvalidCredentials.Error()})
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": shared.ErrForbidden.Error()})
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": shared.ErrNotFound.Error()})
	default:
		logger.Error(c.Request.Context(), "request failed", "error", err.Error(), "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}
