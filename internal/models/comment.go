package models

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

// Comment belongs to a post. Any authenticated user may comment on any
// post; only the comment's author may delete it.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"`
	AuthorID  string    `json:"author_id" gorm:"index"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = xid.New().String()
	}
	return nil
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}
