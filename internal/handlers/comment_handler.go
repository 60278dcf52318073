package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sunayp/medium-blog/backend/internal/middleware"
	"github.com/sunayp/medium-blog/backend/internal/models"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
)

// CommentHandler handles comment creation, listing and deletion
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment routes on the blog group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, strict, soft echo.MiddlewareFunc) {
	g.GET("/:id/comments", h.ListComments, soft)
	g.POST("/:id/comments", h.CreateComment, strict)
	g.DELETE("/comments/:id", h.DeleteComment, strict)
}

// CommentResponse is the wire shape of a comment
type CommentResponse struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"authorId"`
	Author    BlogAuthor `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ListComments retrieves a post's comments, oldest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID := c.Param("id")

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		resp[i] = toCommentResponse(cm)
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": resp})
}

// CreateComment creates a comment on an existing post. Any authenticated
// user may comment; there is no ownership check here.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	if _, err := h.postRepository.GetPostOwnerID(postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: identity.UserID,
		Content:  content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Reload to pick up the author for the response.
	created, err := h.commentRepository.GetCommentByID(comment.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": toCommentResponse(*created)})
}

// DeleteComment deletes a comment after the ownership check
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	commentID := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(commentID)
	ownerID := ""
	if err == nil {
		ownerID = comment.AuthorID
	}
	if err := requireOwner(ownerID, err, identity); err != nil {
		return err
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"id": commentID})
}

func toCommentResponse(cm models.Comment) CommentResponse {
	authorName := ""
	if cm.Author != nil {
		authorName = cm.Author.Name
	}
	return CommentResponse{
		ID:        cm.ID,
		Content:   cm.Content,
		AuthorID:  cm.AuthorID,
		Author:    BlogAuthor{Name: authorName},
		CreatedAt: cm.CreatedAt,
	}
}
