package services

import (
	"testing"
	"time"

	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestValidateCatalogQuery(t *testing.T) {
	assert.NoError(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindAll, Order: CatalogOrderUpdated}))
	assert.NoError(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindProfiles, Order: CatalogOrderName}))

	assert.ErrorIs(t, ValidateCatalogQuery(CatalogQuery{Kind: "everything", Order: CatalogOrderName}), ErrBadQuery)
	assert.ErrorIs(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindPosts, Order: "id; DROP TABLE posts"}), ErrBadQuery)
}

func TestValidateCatalogQueryTypeIsPerKind(t *testing.T) {
	assert.NoError(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindPosts, Order: CatalogOrderUpdated, Type: "writing"}))
	assert.NoError(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindProfiles, Order: CatalogOrderUpdated, Type: "character"}))

	assert.ErrorIs(t, ValidateCatalogQuery(CatalogQuery{Kind: CatalogKindAll, Order: CatalogOrderUpdated, Type: "writing"}), ErrBadQuery)
}

func TestClampCatalogPage(t *testing.T) {
	q := clampCatalogPage(CatalogQuery{Take: 0, Offset: -3})
	assert.Equal(t, 20, q.Take)
	assert.Equal(t, 0, q.Offset)

	q = clampCatalogPage(CatalogQuery{Take: 500, Offset: 40})
	assert.Equal(t, 100, q.Take)
	assert.Equal(t, 40, q.Offset)

	q = clampCatalogPage(CatalogQuery{Take: 30, Offset: 10})
	assert.Equal(t, 30, q.Take)
	assert.Equal(t, 10, q.Offset)
}

func profileEntry(name string, created time.Time) CatalogEntry {
	profile := models.Profile{Name: name}
	profile.CreatedAt = created
	profile.UpdatedAt = created
	return CatalogEntry{Kind: "profile", Profile: lo.ToPtr(profile)}
}

func postEntry(title string, created time.Time) CatalogEntry {
	post := models.Post{Body: datatypes.JSONMap{"title": title}}
	post.CreatedAt = created
	post.UpdatedAt = created
	return CatalogEntry{Kind: "post", Post: lo.ToPtr(post)}
}

func TestCatalogOrderingByName(t *testing.T) {
	now := time.Now()
	less := catalogLess(CatalogOrderName)

	a := profileEntry("Aldric", now)
	b := postEntry("Ballad of the North", now)

	assert.True(t, less(a, b))
	assert.False(t, less(b, a))
}

func TestCatalogOrderingByTimeIsNewestFirst(t *testing.T) {
	now := time.Now()
	less := catalogLess(CatalogOrderCreated)

	older := profileEntry("Old One", now.Add(-time.Hour))
	newer := postEntry("Fresh Ink", now)

	assert.True(t, less(newer, older))
	assert.False(t, less(older, newer))
}

func TestPaginateCatalogEntries(t *testing.T) {
	now := time.Now()
	entries := []CatalogEntry{
		profileEntry("a", now),
		profileEntry("b", now),
		profileEntry("c", now),
	}

	assert.Len(t, PaginateCatalogEntries(entries, 2, 0), 2)
	assert.Len(t, PaginateCatalogEntries(entries, 2, 2), 1)
	assert.Empty(t, PaginateCatalogEntries(entries, 2, 5))

	page := PaginateCatalogEntries(entries, 1, 1)
	assert.Equal(t, "b", page[0].Profile.Name)
}
