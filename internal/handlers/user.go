package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/middleware"
	"github.com/sunayp/medium-blog/backend/internal/models"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
)

// UserHandler handles the authenticated user's profile
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	likeRepository repositories.LikeRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, likeRepo repositories.LikeRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		likeRepository: likeRepo,
	}
}

// RegisterProfileRoutes registers profile routes on the strict-auth group
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, strict echo.MiddlewareFunc) {
	g.GET("/profile", h.GetProfile, strict)
	g.PUT("/profile", h.UpdateProfile, strict)
}

// GetProfile retrieves the authenticated user's profile with post and
// received-like aggregates
func (h *UserHandler) GetProfile(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	user, err := h.userRepository.GetUserByID(identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalBlogs, err := h.postRepository.CountPostsByAuthor(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likesReceived, err := h.likeRepository.CountReceivedByAuthor(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.ProfileResponse{
		Username:      displayName(user),
		Bio:           user.Bio,
		TotalBlogs:    totalBlogs,
		LikesReceived: likesReceived,
	})
}

// UpdateProfile updates the authenticated user's display name
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	user, err := h.userRepository.GetUserByID(identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Name = name
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"username": user.Name})
}

func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Email
}
