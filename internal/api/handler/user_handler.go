package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignUp registers a new user account.
//
// @Summary      Register a new user
// @Description  Create a user account for the Random Knowledge API
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/sign-up [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{Name: user.Name, Email: user.Email})
}
