package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create adds a new category.
//
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// List returns a paginated list of categories.
//
// @Summary      Get all categories with pagination
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Zero-based page index"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  ports.Page[domain.Category]
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns a single category.
//
// @Summary      Get a category by ID
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// ListCuriosities returns the curiosities of a category, paginated.
//
// @Summary      Get all curiosities for a category
// @Tags         categories
// @Produce      json
// @Param        id    path      string  true   "Category ID"
// @Param        page  query     int     false  "Zero-based page index"
// @Param        size  query     int     false  "Page size"
// @Success      200   {object}  ports.Page[domain.Curiosity]
// @Failure      404   {object}  map[string]string
// @Router       /categories/{id}/curiosities [get]
func (h *CategoryHandler) ListCuriosities(c echo.Context) error {
	page, err := h.service.ListCuriosities(c.Request().Context(), c.Param("id"), pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Update renames a category.
//
// @Summary      Update an existing category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category ID"
// @Param        body  body      categoryRequest  true  "New category details"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category and its curiosities.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
