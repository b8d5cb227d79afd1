package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/catalog-backend/internal/repository"
	"github.com/shinyyama/catalog-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// storageError answers for errors the service layer passed through untouched.
func storageError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", what+" not found"))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "database is not ready"))
	default:
		c.Logger().Errorf("%s: %v", what, err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to access "+what))
	}
}
