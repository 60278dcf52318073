package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/models"
)

func TestUserRepository_CreateAssignsID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	assert.NotEmpty(t, user.ID)
}

func TestUserRepository_EmailIsUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	createTestUser(t, db, "a@x.com", "Alice")

	err := repo.CreateUser(&models.User{Email: "a@x.com", Password: "Bb2@bb", Name: "Imposter"})
	assert.Error(t, err)
}

func TestUserRepository_GetByCredentials(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	created := createTestUser(t, db, "a@x.com", "Alice")

	got, err := repo.GetUserByCredentials("a@x.com", "Aa1!aa")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// The comparison is an exact string match on the stored value.
	_, err = repo.GetUserByCredentials("a@x.com", "wrong")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetUserByCredentials("nobody@x.com", "Aa1!aa")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	user := createTestUser(t, db, "a@x.com", "Alice")

	user.Name = "Alice B."
	require.NoError(t, repo.UpdateUser(user))

	got, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
}

func TestCommentRepository_ListByPostOldestFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello")
	repo := NewPostgresCommentRepository(db)

	first := &models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "first"}
	require.NoError(t, repo.CreateComment(first))
	second := &models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "second"}
	require.NoError(t, repo.CreateComment(second))

	comments, err := repo.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "Alice", comments[0].Author.Name)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello")
	repo := NewPostgresCommentRepository(db)

	comment := &models.Comment{PostID: post.ID, AuthorID: user.ID, Content: "bye"}
	require.NoError(t, repo.CreateComment(comment))
	require.NoError(t, repo.DeleteComment(comment.ID))

	_, err := repo.GetCommentByID(comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
