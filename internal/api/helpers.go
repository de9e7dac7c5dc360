package api

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

// jsonError maps service errors onto the response taxonomy: validation 400,
// missing row 404, anything else 500 with the underlying message (admin UI
// is a trusted caller).
func jsonError(c echo.Context, err error) error {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(400, map[string]string{"error": ve.Error()})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(404, map[string]string{"error": "not found"})
	default:
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
}

// publicError is jsonError for the anonymous storefront surface: validation
// 400 and missing row 404 as above, but persistence failures never carry the
// underlying error text.
func publicError(c echo.Context, err error) error {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(400, map[string]string{"error": ve.Error()})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(404, map[string]string{"error": "not found"})
	default:
		return c.JSON(500, map[string]string{"error": "internal server error"})
	}
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, service.ValidationError("invalid id")
	}
	return id, nil
}

// queryID reads an id from the query string; admin delete routes identify
// the row that way.
func queryID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil || id <= 0 {
		return 0, service.ValidationError("invalid id")
	}
	return id, nil
}

func intQuery(c echo.Context, key string, def, min, max int) int {
	raw := c.QueryParam(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
