package models

// Variant is the type-specific payload of a content item. Exactly one
// implementation exists per media shape.
type Variant interface {
	variant()
}

// TextVariant carries rich text or plain text (blog, confession, whisper,
// heart-talk).
type TextVariant struct {
	Body string `json:"body"`
}

// ImageVariant is an image with an optional caption (wallpaper, pet).
type ImageVariant struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption,omitempty"`
}

// VideoVariant is a hosted video with a cover image.
type VideoVariant struct {
	VideoURL string `json:"video_url"`
	CoverURL string `json:"cover_url,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// AudioVariant is a hosted audio track (love song, sound).
type AudioVariant struct {
	AudioURL string `json:"audio_url"`
	CoverURL string `json:"cover_url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (TextVariant) variant()  {}
func (ImageVariant) variant() {}
func (VideoVariant) variant() {}
func (AudioVariant) variant() {}

// Base holds the fields shared by every content type.
type Base struct {
	Type     ContentType
	Title    string
	Tags     []string
	Category string
}

// NewContentItem flattens a base plus variant into a storable row.
func NewContentItem(base Base, v Variant) *ContentItem {
	item := &ContentItem{
		Type:     base.Type,
		Title:    base.Title,
		Tags:     base.Tags,
		Category: base.Category,
	}
	switch p := v.(type) {
	case TextVariant:
		item.Description = p.Body
	case ImageVariant:
		item.ImageURL = p.ImageURL
		item.Description = p.Caption
	case VideoVariant:
		item.VideoURL = p.VideoURL
		item.ImageURL = p.CoverURL
		item.Description = p.Caption
	case AudioVariant:
		item.AudioURL = p.AudioURL
		item.ImageURL = p.CoverURL
		item.Description = p.Notes
	}
	return item
}

// Variant projects the row onto its type-specific payload. A video URL wins
// over the type default, since pets and whispers may be either image or video.
func (c *ContentItem) Variant() Variant {
	if c.VideoURL != "" {
		return VideoVariant{VideoURL: c.VideoURL, CoverURL: c.ImageURL, Caption: c.Description}
	}
	switch c.Type {
	case TypeWallpaper, TypePet:
		return ImageVariant{ImageURL: c.ImageURL, Caption: c.Description}
	case TypeLoveSong, TypeSound:
		return AudioVariant{AudioURL: c.AudioURL, CoverURL: c.ImageURL, Notes: c.Description}
	default:
		return TextVariant{Body: c.Description}
	}
}

// VariantKind names the payload shape for API consumers.
func VariantKind(v Variant) string {
	switch v.(type) {
	case ImageVariant:
		return "image"
	case VideoVariant:
		return "video"
	case AudioVariant:
		return "audio"
	default:
		return "text"
	}
}
