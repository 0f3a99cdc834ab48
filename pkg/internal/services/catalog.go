package services

import (
	"sort"
	"strings"
	"time"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/samber/lo"
)

const (
	CatalogKindAll      = "all"
	CatalogKindProfiles = "profiles"
	CatalogKindPosts    = "posts"

	CatalogOrderCreated = "created"
	CatalogOrderUpdated = "updated"
	CatalogOrderName    = "name"
)

type CatalogQuery struct {
	Kind   string
	Type   string
	Probe  string
	Order  string
	Take   int
	Offset int
}

type CatalogEntry struct {
	Kind    string          `json:"kind"`
	Profile *models.Profile `json:"profile,omitempty"`
	Post    *models.Post    `json:"post,omitempty"`
}

func (e CatalogEntry) sortName() string {
	if e.Profile != nil {
		return e.Profile.Name
	}
	if title, ok := e.Post.Body["title"].(string); ok {
		return title
	}
	return ""
}

func (e CatalogEntry) sortTime(order string) time.Time {
	if e.Profile != nil {
		if order == CatalogOrderUpdated {
			return e.Profile.UpdatedAt
		}
		return e.Profile.CreatedAt
	}
	if order == CatalogOrderUpdated {
		return e.Post.UpdatedAt
	}
	return e.Post.CreatedAt
}

func catalogLess(order string) func(a, b CatalogEntry) bool {
	if order == CatalogOrderName {
		return func(a, b CatalogEntry) bool {
			return strings.Compare(a.sortName(), b.sortName()) < 0
		}
	}
	// Timestamp orders are newest first.
	return func(a, b CatalogEntry) bool {
		return a.sortTime(order).After(b.sortTime(order))
	}
}

func catalogProfileOrder(order string) string {
	switch order {
	case CatalogOrderName:
		return "name ASC"
	case CatalogOrderUpdated:
		return "updated_at DESC"
	default:
		return "created_at DESC"
	}
}

func catalogPostOrder(order string) string {
	switch order {
	case CatalogOrderName:
		return "body->>'title' ASC"
	case CatalogOrderUpdated:
		return "updated_at DESC"
	default:
		return "created_at DESC"
	}
}

// clampCatalogPage bounds the page window: a missing take falls back to the
// default, an oversized one clamps to the cap.
func clampCatalogPage(q CatalogQuery) CatalogQuery {
	if q.Take <= 0 {
		q.Take = 20
	}
	if q.Take > 100 {
		q.Take = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func ValidateCatalogQuery(q CatalogQuery) error {
	if !lo.Contains([]string{CatalogKindAll, CatalogKindProfiles, CatalogKindPosts}, q.Kind) {
		return ErrBadQuery
	}
	if !lo.Contains([]string{CatalogOrderCreated, CatalogOrderUpdated, CatalogOrderName}, q.Order) {
		return ErrBadQuery
	}
	// A type filter belongs to one kind; over the combined kind the values
	// would be ambiguous between profile and post types.
	if q.Kind == CatalogKindAll && len(q.Type) > 0 {
		return ErrBadQuery
	}
	return nil
}

func searchCatalogProfiles(q CatalogQuery, limit int) (int64, []CatalogEntry, error) {
	tx := FilterProfileWithFuzzySearch(database.C, q.Probe)
	if len(q.Type) > 0 {
		tx = FilterProfileWithType(tx, q.Type)
	}

	count, err := CountProfile(tx)
	if err != nil {
		return 0, nil, err
	}

	profiles, err := ListProfile(tx, limit, 0, catalogProfileOrder(q.Order))
	if err != nil {
		return 0, nil, err
	}

	entries := lo.Map(profiles, func(item models.Profile, _ int) CatalogEntry {
		return CatalogEntry{Kind: "profile", Profile: lo.ToPtr(item)}
	})
	return count, entries, nil
}

func searchCatalogPosts(q CatalogQuery, limit int) (int64, []CatalogEntry, error) {
	tx := FilterPostWithFuzzySearch(database.C, q.Probe)
	if len(q.Type) > 0 {
		tx = FilterPostWithType(tx, q.Type)
	}

	count, err := CountPost(tx)
	if err != nil {
		return 0, nil, err
	}

	posts, err := ListPost(tx, limit, 0, catalogPostOrder(q.Order))
	if err != nil {
		return 0, nil, err
	}

	entries := lo.Map(posts, func(item *models.Post, _ int) CatalogEntry {
		return CatalogEntry{Kind: "post", Post: item}
	})
	return count, entries, nil
}

// SearchCatalog runs the unified archive query over profiles and posts.
// For the combined kind both tables are queried up to take+offset rows,
// merged by the requested order, and sliced; counts are the per-table sum.
func SearchCatalog(q CatalogQuery) (int64, []CatalogEntry, error) {
	if err := ValidateCatalogQuery(q); err != nil {
		return 0, nil, err
	}
	q = clampCatalogPage(q)

	limit := q.Take + q.Offset
	var count int64
	var merged []CatalogEntry

	if q.Kind == CatalogKindAll || q.Kind == CatalogKindProfiles {
		c, entries, err := searchCatalogProfiles(CatalogQuery{
			Type: q.Type, Probe: q.Probe, Order: q.Order,
		}, limit)
		if err != nil {
			return 0, nil, err
		}
		count += c
		merged = append(merged, entries...)
	}

	if q.Kind == CatalogKindAll || q.Kind == CatalogKindPosts {
		c, entries, err := searchCatalogPosts(CatalogQuery{
			Type: q.Type, Probe: q.Probe, Order: q.Order,
		}, limit)
		if err != nil {
			return 0, nil, err
		}
		count += c
		merged = append(merged, entries...)
	}

	less := catalogLess(q.Order)
	sort.SliceStable(merged, func(i, j int) bool {
		return less(merged[i], merged[j])
	})

	merged = PaginateCatalogEntries(merged, q.Take, q.Offset)
	return count, merged, nil
}

func PaginateCatalogEntries(entries []CatalogEntry, take, offset int) []CatalogEntry {
	if offset >= len(entries) {
		return []CatalogEntry{}
	}
	entries = entries[offset:]
	if take < len(entries) {
		entries = entries[:take]
	}
	return entries
}
