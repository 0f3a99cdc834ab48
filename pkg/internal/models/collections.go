package models

import "time"

const (
	CollectionTypeCollection  = "collection"
	CollectionTypeChronicle   = "chronicle"
	CollectionTypeAlbum       = "album"
	CollectionTypeGallery     = "gallery"
	CollectionTypeEventSeries = "event_series"
)

var CollectionTypes = []string{
	CollectionTypeCollection,
	CollectionTypeChronicle,
	CollectionTypeAlbum,
	CollectionTypeGallery,
	CollectionTypeEventSeries,
}

// Membership compatibility is checked at insertion time, not by schema.
var collectionAcceptedPostTypes = map[string][]string{
	CollectionTypeCollection:  PostTypes,
	CollectionTypeChronicle:   {PostTypeWriting, PostTypeEvent},
	CollectionTypeAlbum:       {PostTypeArt, PostTypeMedia},
	CollectionTypeGallery:     {PostTypeArt},
	CollectionTypeEventSeries: {PostTypeEvent},
}

func CollectionAcceptsPostType(collectionType, postType string) bool {
	accepted, ok := collectionAcceptedPostTypes[collectionType]
	if !ok {
		return false
	}
	for _, t := range accepted {
		if t == postType {
			return true
		}
	}
	return false
}

type Collection struct {
	BaseModel

	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`

	Posts   []CollectionPost   `json:"posts" gorm:"foreignKey:CollectionID"`
	Editors []CollectionEditor `json:"editors" gorm:"foreignKey:CollectionID"`
}

// CollectionPost keeps ordered membership; positions are contiguous from zero
// within a collection.
type CollectionPost struct {
	CollectionID uint      `json:"collection_id" gorm:"primaryKey;autoIncrement:false"`
	PostID       uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Post Post `json:"post"`
}

type CollectionEditor struct {
	CollectionID uint      `json:"collection_id" gorm:"primaryKey;autoIncrement:false"`
	AccountID    uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt    time.Time `json:"created_at"`

	Account Account `json:"account"`
}
