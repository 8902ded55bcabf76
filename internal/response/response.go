package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain"
)

// JSON writes data with status 200.
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message writes a mutation acknowledgement, optionally carrying the record.
func Message(c *gin.Context, status int, msg string, pet *api.Record) {
	c.JSON(status, api.MutationResponse{Message: msg, Pet: pet})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.MutationResponse{Error: msg})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.MutationResponse{Error: msg})
}

// Error maps domain errors to HTTP statuses. Unknown errors become 500 with a
// generic message so internals never leak.
func Error(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		validation   *domain.ValidationError
		conflict     *domain.ConflictError
		unauthorized *domain.UnauthorizedError
	)
	switch {
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, api.MutationResponse{Error: notFound.Error()})
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, api.MutationResponse{Error: validation.Error()})
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, api.MutationResponse{Error: conflict.Error()})
	case errors.As(err, &unauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MutationResponse{Error: unauthorized.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.MutationResponse{Error: "internal server error"})
	}
}
