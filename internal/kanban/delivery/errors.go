package delivery

import (
	"net/http"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation, domain.KindWipLimitExceeded:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Unexpected errors keep their cause
// out of the body.
func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	message := err.Error()
	if kind == domain.KindUnexpected {
		message = "An unexpected error occurred"
	}
	_ = c.Error(err)
	c.JSON(StatusFor(kind), dto.ErrorResponse{ErrorCode: string(kind), Message: message})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		ErrorCode: string(domain.KindValidation),
		Message:   err.Error(),
	})
}
