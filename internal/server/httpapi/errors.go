package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON shape of every error surfaced to the SPA; the
// client renders Error as a transient notification.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps a store/service error to an HTTP status. No error here is
// fatal to the process; the store stays usable after any failed operation.
func writeError(c *gin.Context, err error) {
	var status int

	switch {
	case errors.Is(err, common.ErrNotAuthenticated),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrCategoryInUse):
		status = http.StatusConflict
	case errors.Is(err, common.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrLoad), errors.Is(err, common.ErrPersistence):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}
