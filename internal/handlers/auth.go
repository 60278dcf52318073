package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/auth"
	"github.com/sunayp/medium-blog/backend/internal/models"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
)

// AuthHandler handles signup and signin
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterAuthRoutes registers the anonymous authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
}

// Signup creates a user and returns a bearer token as a plain text body.
// The password is persisted as provided; see DESIGN.md.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		// Duplicate email lands here via the unique index.
		return c.String(http.StatusLengthRequired, "Invalid")
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		return c.String(http.StatusLengthRequired, "Invalid")
	}
	return c.String(http.StatusOK, token)
}

// SignIn matches email and password against the stored record and returns
// a bearer token as a plain text body
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	user, err := h.userRepository.GetUserByCredentials(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "Incorrect creds")
		}
		return c.String(http.StatusLengthRequired, "Invalid")
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		return c.String(http.StatusLengthRequired, "Invalid")
	}
	return c.String(http.StatusOK, token)
}
