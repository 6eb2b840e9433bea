package models

import (
	"time"
)

// ContentType is the discriminator stored in content.type.
type ContentType string

const (
	TypeBlog       ContentType = "blog"
	TypeWallpaper  ContentType = "wallpaper"
	TypeConfession ContentType = "confession"
	TypeWhisper    ContentType = "whisper"
	TypeLoveSong   ContentType = "love song"
	TypeSound      ContentType = "sound"
	TypePet        ContentType = "pet"
	TypeHeartTalk  ContentType = "heart-talk"
)

// ContentTypes lists every accepted discriminator.
var ContentTypes = []ContentType{
	TypeBlog, TypeWallpaper, TypeConfession, TypeWhisper,
	TypeLoveSong, TypeSound, TypePet, TypeHeartTalk,
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// ContentItem is one row of the polymorphic content table. Use Variant to
// get the type-specific view of it.
type ContentItem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Type        ContentType `gorm:"size:20;not null;index" json:"type"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ImageURL    string      `json:"image_url,omitempty"`
	VideoURL    string      `json:"video_url,omitempty"`
	AudioURL    string      `json:"audio_url,omitempty"`
	Tags        []string    `gorm:"type:text;serializer:json" json:"tags"`
	Category    string      `gorm:"index" json:"category,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Filled in by queries, not stored
	CommentCount int64 `gorm:"-" json:"comment_count"`
}

func (ContentItem) TableName() string { return "content" }
