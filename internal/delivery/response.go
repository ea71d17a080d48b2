package delivery

import (
	"errors"
	"net/http"
	"strings"

	"jaggery_shop/internal/repository"
	"jaggery_shop/internal/usecase"

	"github.com/gin-gonic/gin"
)

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// mapErrorToStatus classifies a usecase error into the three client-visible
// categories: validation (400, with the specific message), not found /
// conflict, or a generic persistence failure (500).
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, repository.ErrCartEmpty):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(errMsg, "already exists") || strings.Contains(errMsg, "duplicate key") {
		return http.StatusConflict
	}
	if strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "required") ||
		strings.Contains(errMsg, "missing") ||
		strings.Contains(errMsg, "cannot be empty") ||
		strings.Contains(errMsg, "must be") ||
		strings.Contains(errMsg, "must contain") ||
		strings.Contains(errMsg, "please enter") {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// fail writes the error with its mapped status. Server errors hide the
// underlying cause behind a generic message.
func fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		errorResponse(c, status, "Internal server error")
		return
	}
	errorResponse(c, status, err.Error())
}
