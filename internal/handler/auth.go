package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"travelbudgeter/internal/models"
)

// Authenticator is the slice of the upstream client the auth endpoints need.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type AuthHandler struct {
	client Authenticator
}

func NewAuthHandler(client Authenticator) *AuthHandler {
	return &AuthHandler{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "username and password are required",
			Code:    http.StatusBadRequest,
		})
	}

	if err := h.client.Login(c.Request().Context(), req.Username, req.Password); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "logged_in"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.client.Logout(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the current profile; an absent session yields a null user rather
// than a failure.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.client.CurrentUser(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]*models.User{"user": user})
}
