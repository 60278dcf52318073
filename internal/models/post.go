package models

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

// Post is a published or draft blog post. AuthorID never changes after
// creation; only the author may update or delete the post.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id" gorm:"index"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
	Tags      []Tag     `json:"-" gorm:"many2many:post_tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = xid.New().String()
	}
	return nil
}

// Tag is a free-form label attached to posts through the post_tags join table.
type Tag struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

type UpdateBlogRequest struct {
	Title     *string  `json:"title,omitempty"`
	Content   *string  `json:"content,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Published *bool    `json:"published,omitempty"`
}
