package http

import (
	"errors"
	"net/http"

	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto the uniform error body. Unknown
// errors become a generic 500 so internals never leak to callers.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrAlreadyCancelled),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	}

	return ctx.JSON(status, errorBody{Code: status, Message: message})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorBody{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
