package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionAcceptsPostType(t *testing.T) {
	cases := []struct {
		collectionType string
		postType       string
		accepted       bool
	}{
		{CollectionTypeCollection, PostTypeWriting, true},
		{CollectionTypeCollection, PostTypeArt, true},
		{CollectionTypeCollection, PostTypeMedia, true},
		{CollectionTypeCollection, PostTypeEvent, true},

		{CollectionTypeChronicle, PostTypeWriting, true},
		{CollectionTypeChronicle, PostTypeEvent, true},
		{CollectionTypeChronicle, PostTypeArt, false},
		{CollectionTypeChronicle, PostTypeMedia, false},

		{CollectionTypeAlbum, PostTypeArt, true},
		{CollectionTypeAlbum, PostTypeMedia, true},
		{CollectionTypeAlbum, PostTypeWriting, false},

		{CollectionTypeGallery, PostTypeArt, true},
		{CollectionTypeGallery, PostTypeMedia, false},

		{CollectionTypeEventSeries, PostTypeEvent, true},
		{CollectionTypeEventSeries, PostTypeWriting, false},
	}

	for _, tc := range cases {
		assert.Equal(
			t, tc.accepted,
			CollectionAcceptsPostType(tc.collectionType, tc.postType),
			"%s should accept %s: %v", tc.collectionType, tc.postType, tc.accepted,
		)
	}
}

func TestCollectionRejectsUnknownTypes(t *testing.T) {
	assert.False(t, CollectionAcceptsPostType("scrapbook", PostTypeArt))
	assert.False(t, CollectionAcceptsPostType(CollectionTypeAlbum, "sculpture"))
}
