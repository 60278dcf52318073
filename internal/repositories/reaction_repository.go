package repositories

import (
	"github.com/sunayp/medium-blog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository is the shared contract for the like and bookmark stores.
// Set and Unset are idempotent: re-asserting a state that already holds is a
// no-op, never an error. The unique (user_id, post_id) index backs this up
// under concurrent toggles.
type ReactionRepository interface {
	Set(userID, postID string) error
	Unset(userID, postID string) error
	CountByPost(postID string) (int64, error)
	HasUser(userID, postID string) (bool, error)
	CountsForPosts(postIDs []string) (map[string]int64, error)
	UserSetForPosts(userID string, postIDs []string) (map[string]bool, error)
}

// LikeRepository adds the profile aggregate on top of the reaction contract.
type LikeRepository interface {
	ReactionRepository
	CountReceivedByAuthor(authorID string) (int64, error)
}

type postCount struct {
	PostID string
	Total  int64
}

// PostgresLikeRepository implements ReactionRepository over the likes table
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Set records that the user likes the post. Already-liked is a no-op.
func (r *PostgresLikeRepository) Set(userID, postID string) error {
	like := models.Like{UserID: userID, PostID: postID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Unset removes the user's like on the post. Not-liked is a no-op.
func (r *PostgresLikeRepository) Unset(userID, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
}

// CountByPost retrieves the number of likes on a post
func (r *PostgresLikeRepository) CountByPost(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// HasUser checks whether the user has liked the post
func (r *PostgresLikeRepository) HasUser(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// CountsForPosts retrieves like counts for a batch of posts, keyed by post ID.
// Posts with no likes are absent from the map.
func (r *PostgresLikeRepository) CountsForPosts(postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []postCount
	err := r.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Total
	}
	return result, nil
}

// UserSetForPosts retrieves which of the given posts the user has liked
func (r *PostgresLikeRepository) UserSetForPosts(userID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}

// CountReceivedByAuthor retrieves the number of likes across all of an
// author's posts, for the profile view
func (r *PostgresLikeRepository) CountReceivedByAuthor(authorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// PostgresBookmarkRepository implements ReactionRepository over the
// bookmarks table
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// Set records that the user bookmarked the post. Already-saved is a no-op.
func (r *PostgresBookmarkRepository) Set(userID, postID string) error {
	bookmark := models.Bookmark{UserID: userID, PostID: postID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bookmark).Error
}

// Unset removes the user's bookmark on the post. Not-saved is a no-op.
func (r *PostgresBookmarkRepository) Unset(userID, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{}).Error
}

// CountByPost retrieves the number of bookmarks on a post
func (r *PostgresBookmarkRepository) CountByPost(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// HasUser checks whether the user has bookmarked the post
func (r *PostgresBookmarkRepository) HasUser(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// CountsForPosts retrieves bookmark counts for a batch of posts
func (r *PostgresBookmarkRepository) CountsForPosts(postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []postCount
	err := r.db.Model(&models.Bookmark{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Total
	}
	return result, nil
}

// UserSetForPosts retrieves which of the given posts the user has bookmarked
func (r *PostgresBookmarkRepository) UserSetForPosts(userID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		result[b.PostID] = true
	}
	return result, nil
}
