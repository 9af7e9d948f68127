package handler

import (
	"strconv"

	domainerrors "clipstream/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// parseIDParam reads a numeric path parameter. Anything that is not a
// positive integer renders as a validation failure.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be a positive integer")
	}

	return id, nil
}

// queryInt reads an optional numeric query parameter, falling back to the
// provided default when absent or malformed.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}

// queryUint reads an optional numeric query parameter, returning zero when absent.
func queryUint(c echo.Context, name string) uint64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return value
}
