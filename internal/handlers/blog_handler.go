package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/middleware"
	"github.com/sunayp/medium-blog/backend/internal/models"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
)

// BlogHandler handles post CRUD and the annotated listings
type BlogHandler struct {
	postRepository     repositories.PostRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.ReactionRepository
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, bookmarkRepo repositories.ReactionRepository) *BlogHandler {
	return &BlogHandler{
		postRepository:     postRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
	}
}

// RegisterBlogRoutes registers post routes. Listing single posts and the
// bulk feed stay readable for anonymous callers; everything that mutates
// requires authentication.
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, strict, soft echo.MiddlewareFunc) {
	g.POST("", h.CreateBlog, strict)
	g.GET("/bulk", h.ListBlogs, soft)
	g.GET("/my", h.MyBlogs, strict)
	g.GET("/saved", h.SavedBlogs, strict)
	g.GET("/:id", h.GetBlog, soft)
	g.PUT("/:id", h.UpdateBlog, strict)
	g.DELETE("/:id", h.DeleteBlog, strict)
}

// BlogAuthor is the author fragment embedded in a BlogResponse
type BlogAuthor struct {
	Name string `json:"name"`
}

// BlogResponse is a post annotated relative to the requesting identity
type BlogResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Published      bool       `json:"published"`
	AuthorID       string     `json:"authorId"`
	Author         BlogAuthor `json:"author"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"createdAt"`
	LikesCount     int64      `json:"likesCount"`
	LikedByMe      bool       `json:"likedByMe"`
	BookmarksCount int64      `json:"bookmarksCount"`
	BookmarkedByMe bool       `json:"bookmarkedByMe"`
}

// CreateBlog creates a post owned by the authenticated user
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: identity.UserID,
	}
	if err := h.postRepository.CreatePost(post, req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": post.ID})
}

// UpdateBlog updates a post after the ownership check. The author never
// changes, whatever the payload says.
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	postID := c.Param("id")

	ownerID, err := h.postRepository.GetPostOwnerID(postID)
	if err := requireOwner(ownerID, err, identity); err != nil {
		return err
	}

	var req models.UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Inputs not correct")
	}

	if err := h.postRepository.UpdatePost(postID, req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"id": postID})
}

// DeleteBlog deletes a post after the ownership check
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	postID := c.Param("id")

	ownerID, err := h.postRepository.GetPostOwnerID(postID)
	if err := requireOwner(ownerID, err, identity); err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"id": postID})
}

// GetBlog retrieves a single post, annotated for the caller. A missing post
// is a 200 with a null blog, matching what the client expects.
func (h *BlogHandler) GetBlog(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"blog": nil})
		}
		return echo.NewHTTPError(http.StatusLengthRequired, "Error while fetching blog post")
	}

	blogs, err := h.annotate([]models.Post{*post}, identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusLengthRequired, "Error while fetching blog post")
	}
	return c.JSON(http.StatusOK, echo.Map{"blog": blogs[0]})
}

// ListBlogs retrieves the bulk feed with optional filters and sorting
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	filter := repositories.ListPostsFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Author: strings.TrimSpace(c.QueryParam("author")),
		Tags:   splitTags(c.QueryParam("tags")),
		Sort:   c.QueryParam("sort"),
	}

	posts, err := h.postRepository.ListPosts(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	blogs, err := h.annotate(posts, identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs})
}

// MyBlogs retrieves the caller's own posts
func (h *BlogHandler) MyBlogs(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	posts, err := h.postRepository.ListPostsByAuthor(identity.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	blogs, err := h.annotate(posts, identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs})
}

// SavedBlogs retrieves the posts the caller has bookmarked
func (h *BlogHandler) SavedBlogs(c echo.Context) error {
	identity := middleware.CurrentIdentity(c)

	posts, err := h.postRepository.ListPostsSavedByUser(identity.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	blogs, err := h.annotate(posts, identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs})
}

// annotate builds BlogResponses with like/bookmark counts and the caller's
// own flags. Anonymous callers get false flags.
func (h *BlogHandler) annotate(posts []models.Post, identity middleware.Identity) ([]BlogResponse, error) {
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := h.likeRepository.CountsForPosts(postIDs)
	if err != nil {
		return nil, err
	}
	bookmarkCounts, err := h.bookmarkRepository.CountsForPosts(postIDs)
	if err != nil {
		return nil, err
	}

	likedSet := map[string]bool{}
	savedSet := map[string]bool{}
	if identity.Authenticated() {
		likedSet, err = h.likeRepository.UserSetForPosts(identity.UserID, postIDs)
		if err != nil {
			return nil, err
		}
		savedSet, err = h.bookmarkRepository.UserSetForPosts(identity.UserID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	blogs := make([]BlogResponse, len(posts))
	for i, p := range posts {
		authorName := ""
		if p.Author != nil {
			authorName = p.Author.Name
		}
		tags := make([]string, len(p.Tags))
		for j, t := range p.Tags {
			tags[j] = t.Name
		}
		blogs[i] = BlogResponse{
			ID:             p.ID,
			Title:          p.Title,
			Content:        p.Content,
			Published:      p.Published,
			AuthorID:       p.AuthorID,
			Author:         BlogAuthor{Name: authorName},
			Tags:           tags,
			CreatedAt:      p.CreatedAt,
			LikesCount:     likeCounts[p.ID],
			LikedByMe:      likedSet[p.ID],
			BookmarksCount: bookmarkCounts[p.ID],
			BookmarkedByMe: savedSet[p.ID],
		}
	}
	return blogs, nil
}

// requireOwner is the ownership guard shared by post and comment mutations.
// A missing resource and a non-owner both surface as 403, so a caller cannot
// probe for the existence of resources they do not own.
func requireOwner(ownerID string, lookupErr error, identity middleware.Identity) error {
	if lookupErr != nil || ownerID != identity.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed")
	}
	return nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
