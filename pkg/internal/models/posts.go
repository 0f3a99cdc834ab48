package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PostTypeWriting = "writing"
	PostTypeArt     = "art"
	PostTypeMedia   = "media"
	PostTypeEvent   = "event"
)

var PostTypes = []string{
	PostTypeWriting,
	PostTypeArt,
	PostTypeMedia,
	PostTypeEvent,
}

type Post struct {
	BaseModel

	Type     string            `json:"type"`
	Body     datatypes.JSONMap `json:"body" gorm:"index:,type:gin"`
	Language string            `json:"language"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`

	Authors []PostAuthor `json:"authors" gorm:"foreignKey:PostID"`
	Editors []PostEditor `json:"editors" gorm:"foreignKey:PostID"`

	PublishedAt *time.Time `json:"published_at"`
	EditedAt    *time.Time `json:"edited_at"`
}

type PostWritingBody struct {
	Thumbnail   *string  `json:"thumbnail"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

type PostArtBody struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Attachments []string `json:"attachments"`
}

type PostMediaBody struct {
	Thumbnail   *string  `json:"thumbnail"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Attachments []string `json:"attachments"`
}

type PostEventBody struct {
	Thumbnail   *string    `json:"thumbnail"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Content     string     `json:"content"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Attachments []string   `json:"attachments"`
}

// PostAuthor attributes a post to a profile; exactly one row per post
// carries IsPrimary.
type PostAuthor struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	ProfileID uint      `json:"profile_id" gorm:"primaryKey;autoIncrement:false"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`

	Profile Profile `json:"profile"`
}

type PostEditor struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	AccountID uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`

	Account Account `json:"account"`
}
