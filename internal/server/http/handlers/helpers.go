package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated staff member from context.
func CurrentActor(c *gin.Context) model.Actor {
	return middleware.CurrentActor(c)
}

// idParam parses a numeric path parameter; zero means absent or malformed.
func idParam(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// statusFromError maps domain errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrInsufficientPayment),
		errors.Is(err, domainErrors.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConcurrencyConflict),
		errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
