package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/models"
)

func updateBlogRequest(title, content *string, tags []string, published *bool) models.UpdateBlogRequest {
	return models.UpdateBlogRequest{Title: title, Content: content, Tags: tags, Published: published}
}

func tagNames(post *models.Post) []string {
	names := make([]string, len(post.Tags))
	for i, tag := range post.Tags {
		names[i] = tag.Name
	}
	return names
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	repo := NewPostgresPostRepository(db)

	post := createTestPost(t, db, user.ID, "Hello", "Go", "Web")

	got, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, user.ID, got.AuthorID)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Alice", got.Author.Name)
	assert.Len(t, got.Tags, 2)
}

func TestPostRepository_GetOwnerID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello")
	repo := NewPostgresPostRepository(db)

	ownerID, err := repo.GetPostOwnerID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ownerID)

	_, err = repo.GetPostOwnerID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_UpdatePartialFields(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello", "Go")
	repo := NewPostgresPostRepository(db)

	title := "Updated"
	published := true
	err := repo.UpdatePost(post.ID, updateBlogRequest(&title, nil, []string{"Rust", "Systems"}, &published))
	require.NoError(t, err)

	got, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.Equal(t, "content of Hello", got.Content) // untouched
	assert.True(t, got.Published)
	assert.Equal(t, user.ID, got.AuthorID) // owner immutable

	names := tagNames(got)
	assert.ElementsMatch(t, []string{"Rust", "Systems"}, names)
}

func TestPostRepository_UpdateNilTagsKeepsTags(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello", "Go")
	repo := NewPostgresPostRepository(db)

	content := "rewritten"
	require.NoError(t, repo.UpdatePost(post.ID, updateBlogRequest(nil, &content, nil, nil)))

	got, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Content)
	assert.ElementsMatch(t, []string{"Go"}, tagNames(got))
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	post := createTestPost(t, db, user.ID, "Hello", "Go")
	repo := NewPostgresPostRepository(db)

	require.NoError(t, repo.DeletePost(post.ID))

	_, err := repo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_ListSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	createTestPost(t, db, user.ID, "Hello World")
	createTestPost(t, db, user.ID, "Unrelated")
	repo := NewPostgresPostRepository(db)

	posts, err := repo.ListPosts(ListPostsFilter{Search: "hello"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello World", posts[0].Title)
}

func TestPostRepository_ListByAuthorName(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "a@x.com", "Alice")
	bob := createTestUser(t, db, "b@x.com", "Bob")
	createTestPost(t, db, alice.ID, "Alice writes")
	createTestPost(t, db, bob.ID, "Bob writes")
	repo := NewPostgresPostRepository(db)

	posts, err := repo.ListPosts(ListPostsFilter{Author: "ali"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Alice writes", posts[0].Title)
}

func TestPostRepository_ListByTags(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	createTestPost(t, db, user.ID, "Go post", "Go")
	createTestPost(t, db, user.ID, "Rust post", "Rust")
	createTestPost(t, db, user.ID, "Both", "Go", "Rust")
	createTestPost(t, db, user.ID, "Neither")
	repo := NewPostgresPostRepository(db)

	posts, err := repo.ListPosts(ListPostsFilter{Tags: []string{"Go", "Rust"}})
	require.NoError(t, err)
	assert.Len(t, posts, 3) // at least one matching tag qualifies
}

func TestPostRepository_ListSortPopular(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com", "A")
	b := createTestUser(t, db, "b@x.com", "B")
	c := createTestUser(t, db, "c@x.com", "C")
	cold := createTestPost(t, db, a.ID, "Cold")
	warm := createTestPost(t, db, a.ID, "Warm")
	hot := createTestPost(t, db, a.ID, "Hot")
	likes := NewPostgresLikeRepository(db)
	require.NoError(t, likes.Set(a.ID, hot.ID))
	require.NoError(t, likes.Set(b.ID, hot.ID))
	require.NoError(t, likes.Set(c.ID, hot.ID))
	require.NoError(t, likes.Set(b.ID, warm.ID))
	repo := NewPostgresPostRepository(db)

	posts, err := repo.ListPosts(ListPostsFilter{Sort: SortPopular})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, hot.ID, posts[0].ID)
	assert.Equal(t, warm.ID, posts[1].ID)
	assert.Equal(t, cold.ID, posts[2].ID)
}

func TestPostRepository_ListSavedByUser(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com", "A")
	b := createTestUser(t, db, "b@x.com", "B")
	p1 := createTestPost(t, db, a.ID, "One")
	createTestPost(t, db, a.ID, "Two")
	bookmarks := NewPostgresBookmarkRepository(db)
	require.NoError(t, bookmarks.Set(b.ID, p1.ID))
	repo := NewPostgresPostRepository(db)

	posts, err := repo.ListPostsSavedByUser(b.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, p1.ID, posts[0].ID)
}

func TestPostRepository_CountByAuthor(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com", "A")
	b := createTestUser(t, db, "b@x.com", "B")
	createTestPost(t, db, a.ID, "One")
	createTestPost(t, db, a.ID, "Two")
	createTestPost(t, db, b.ID, "Other")
	repo := NewPostgresPostRepository(db)

	count, err := repo.CountPostsByAuthor(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPostRepository_SharedTagsAcrossPosts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "a@x.com", "Alice")
	createTestPost(t, db, user.ID, "First", "Go")
	createTestPost(t, db, user.ID, "Second", "Go")
	repo := NewPostgresPostRepository(db)

	// The shared tag name must not violate the unique tag index.
	posts, err := repo.ListPosts(ListPostsFilter{Tags: []string{"Go"}})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
