package repositories

import (
	"github.com/sunayp/medium-blog/backend/internal/models"
	"gorm.io/gorm"
)

// Sort keys accepted by ListPosts.
const (
	SortNewest  = "newest"
	SortPopular = "popular"
)

// ListPostsFilter narrows and orders the bulk post listing. Zero values mean
// "no filter". Tags matches posts carrying at least one of the given names.
type ListPostsFilter struct {
	Search string   // case-insensitive substring on the post title
	Author string   // case-insensitive substring on the author's display name
	Tags   []string // at least one tag must be present on the post
	Sort   string   // SortNewest (default) or SortPopular
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post, tags []string) error
	GetPostByID(id string) (*models.Post, error)
	GetPostOwnerID(id string) (string, error)
	UpdatePost(id string, req models.UpdateBlogRequest) error
	DeletePost(id string) error
	ListPosts(filter ListPostsFilter) ([]models.Post, error)
	ListPostsByAuthor(authorID string) ([]models.Post, error)
	ListPostsSavedByUser(userID string) ([]models.Post, error)
	CountPostsByAuthor(authorID string) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post and attaches its tags, creating tag rows
// as needed.
func (r *PostgresPostRepository) CreatePost(post *models.Post, tags []string) error {
	resolved, err := r.resolveTags(tags)
	if err != nil {
		return err
	}
	post.Tags = resolved
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author and tags
func (r *PostgresPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Tags").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostOwnerID retrieves only the author ID of a post, for ownership checks
func (r *PostgresPostRepository) GetPostOwnerID(id string) (string, error) {
	var post models.Post
	if err := r.db.Select("id", "author_id").First(&post, "id = ?", id).Error; err != nil {
		return "", err
	}
	return post.AuthorID, nil
}

// UpdatePost applies the non-nil fields of req to the post. The author is
// never touched. A nil Tags slice leaves tags unchanged; a non-nil one
// replaces them.
func (r *PostgresPostRepository) UpdatePost(id string, req models.UpdateBlogRequest) error {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) > 0 {
		if err := r.db.Model(&models.Post{ID: id}).Updates(updates).Error; err != nil {
			return err
		}
	}
	if req.Tags != nil {
		resolved, err := r.resolveTags(req.Tags)
		if err != nil {
			return err
		}
		if err := r.db.Model(&models.Post{ID: id}).Association("Tags").Replace(resolved); err != nil {
			return err
		}
	}
	return nil
}

// DeletePost deletes a post and its tag associations
func (r *PostgresPostRepository) DeletePost(id string) error {
	if err := r.db.Model(&models.Post{ID: id}).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}

// ListPosts retrieves posts matching the filter, with authors and tags loaded
func (r *PostgresPostRepository) ListPosts(filter ListPostsFilter) ([]models.Post, error) {
	q := r.db.Model(&models.Post{}).Preload("Author").Preload("Tags")

	if filter.Search != "" {
		q = q.Where("LOWER(posts.title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.Author != "" {
		q = q.Joins("JOIN users ON users.id = posts.author_id").
			Where("LOWER(users.name) LIKE LOWER(?)", "%"+filter.Author+"%")
	}
	if len(filter.Tags) > 0 {
		tagged := r.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name IN ?", filter.Tags)
		q = q.Where("posts.id IN (?)", tagged)
	}

	if filter.Sort == SortPopular {
		q = q.Select("posts.*").
			Joins("LEFT JOIN likes ON likes.post_id = posts.id").
			Group("posts.id").
			Order("COUNT(likes.id) DESC").
			Order("posts.created_at DESC")
	} else {
		q = q.Order("posts.created_at DESC")
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsByAuthor retrieves an author's own posts, newest first
func (r *PostgresPostRepository) ListPostsByAuthor(authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsSavedByUser retrieves the posts a user has bookmarked, most
// recently saved first
func (r *PostgresPostRepository) ListPostsSavedByUser(userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Tags").
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPostsByAuthor retrieves the number of posts an author has written
func (r *PostgresPostRepository) CountPostsByAuthor(authorID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresPostRepository) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := r.db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
