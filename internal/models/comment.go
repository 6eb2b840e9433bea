package models

import (
	"time"
)

// DefaultAuthor is stored when a commenter leaves the name blank.
const DefaultAuthor = "Anonymous"

type Comment struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Content         string       `gorm:"type:text;not null" json:"content"`
	Author          string       `gorm:"size:50;not null" json:"author"`
	ContentID       uint         `gorm:"not null;index" json:"content_id"`
	Item            *ContentItem `gorm:"foreignKey:ContentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID        *uint        `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Parent          *Comment     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DeleteTokenHash string       `gorm:"size:100;not null" json:"-"` // bcrypt; the token itself is never stored
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`
	ContentHTML     string       `gorm:"-" json:"content_html,omitempty"` // rendered on read
}

func (Comment) TableName() string { return "comment" }

// IsReply reports whether the comment hangs under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
