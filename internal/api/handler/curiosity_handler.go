package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

type CuriosityHandler struct {
	service ports.CuriosityService
}

func NewCuriosityHandler(service ports.CuriosityService) *CuriosityHandler {
	return &CuriosityHandler{service: service}
}

type curiosityRequest struct {
	Curiosity string `json:"curiosity" validate:"required"`
}

// Create adds a new curiosity to a category.
//
// @Summary      Create a new curiosity for a category
// @Tags         curiosities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string            true  "Category ID"
// @Param        body      body      curiosityRequest  true  "Curiosity details"
// @Success      201       {object}  domain.Curiosity
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /curiosities [post]
func (h *CuriosityHandler) Create(c echo.Context) error {
	var req curiosityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryID := c.QueryParam("category")
	if categoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category query parameter is required")
	}

	curiosity, err := h.service.Create(c.Request().Context(), categoryID, req.Curiosity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, curiosity)
}

// List returns a paginated list of curiosities.
//
// @Summary      Get all curiosities with pagination
// @Tags         curiosities
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Zero-based page index"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  ports.Page[domain.Curiosity]
// @Router       /curiosities [get]
func (h *CuriosityHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Random returns a random curiosity.
//
// @Summary      Get a random curiosity
// @Tags         curiosities
// @Produce      json
// @Success      200  {object}  domain.Curiosity
// @Failure      404  {object}  map[string]string
// @Router       /curiosities/random [get]
func (h *CuriosityHandler) Random(c echo.Context) error {
	curiosity, err := h.service.Random(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, curiosity)
}

// Get returns a single curiosity.
//
// @Summary      Get a curiosity by ID
// @Tags         curiosities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Curiosity ID"
// @Success      200  {object}  domain.Curiosity
// @Failure      404  {object}  map[string]string
// @Router       /curiosities/{id} [get]
func (h *CuriosityHandler) Get(c echo.Context) error {
	curiosity, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, curiosity)
}

// Update rewrites the text of a curiosity.
//
// @Summary      Update an existing curiosity
// @Tags         curiosities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Curiosity ID"
// @Param        body  body      curiosityRequest  true  "New curiosity details"
// @Success      200   {object}  domain.Curiosity
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /curiosities/{id} [put]
func (h *CuriosityHandler) Update(c echo.Context) error {
	var req curiosityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	curiosity, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Curiosity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, curiosity)
}

// Delete removes a curiosity.
//
// @Summary      Delete a curiosity
// @Tags         curiosities
// @Security     BearerAuth
// @Param        id  path  string  true  "Curiosity ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /curiosities/{id} [delete]
func (h *CuriosityHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
