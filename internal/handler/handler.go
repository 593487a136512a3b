package handler

import (
	"github.com/labstack/echo/v4"

	"kivutrips/internal/errors"
)

// httpError translates a domain error into the wire-level error contract.
func httpError(err error) error {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
