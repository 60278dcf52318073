package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunayp/medium-blog/backend/internal/middleware"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
)

// ReactionHandler handles the like and bookmark toggles. POST asserts the
// "on" state, DELETE the "off" state; both are idempotent and both answer
// with the post's count and the caller's resulting flag.
type ReactionHandler struct {
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(likeRepo repositories.LikeRepository, bookmarkRepo repositories.ReactionRepository, postRepo repositories.PostRepository) *ReactionHandler {
	return &ReactionHandler{
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
	}
}

// RegisterReactionRoutes registers like and bookmark routes on the blog group
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group, strict echo.MiddlewareFunc) {
	g.POST("/:id/like", h.LikeBlog, strict)
	g.DELETE("/:id/like", h.UnlikeBlog, strict)
	g.POST("/:id/bookmark", h.BookmarkBlog, strict)
	g.DELETE("/:id/bookmark", h.UnbookmarkBlog, strict)
}

// LikeBlog asserts the caller's like on a post
func (h *ReactionHandler) LikeBlog(c echo.Context) error {
	return h.toggle(c, h.likeRepository, true, "likesCount", "likedByMe")
}

// UnlikeBlog removes the caller's like from a post
func (h *ReactionHandler) UnlikeBlog(c echo.Context) error {
	return h.toggle(c, h.likeRepository, false, "likesCount", "likedByMe")
}

// BookmarkBlog asserts the caller's bookmark on a post
func (h *ReactionHandler) BookmarkBlog(c echo.Context) error {
	return h.toggle(c, h.bookmarkRepository, true, "bookmarksCount", "bookmarkedByMe")
}

// UnbookmarkBlog removes the caller's bookmark from a post
func (h *ReactionHandler) UnbookmarkBlog(c echo.Context) error {
	return h.toggle(c, h.bookmarkRepository, false, "bookmarksCount", "bookmarkedByMe")
}

// toggle applies the desired reaction state and reads the count back on the
// same session, after the write.
func (h *ReactionHandler) toggle(c echo.Context, reactions repositories.ReactionRepository, on bool, countKey, flagKey string) error {
	identity := middleware.CurrentIdentity(c)
	postID := c.Param("id")

	if _, err := h.postRepository.GetPostOwnerID(postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	var err error
	if on {
		err = reactions.Set(identity.UserID, postID)
	} else {
		err = reactions.Unset(identity.UserID, postID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := reactions.CountByPost(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	mine, err := reactions.HasUser(identity.UserID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{countKey: count, flagKey: mine})
}
