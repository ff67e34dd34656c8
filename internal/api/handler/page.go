package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

// pageRequest reads the page/size query parameters. Out-of-range values are
// clamped downstream by PageRequest.Normalize.
func pageRequest(c echo.Context) ports.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return ports.PageRequest{Page: page, Size: size}
}
