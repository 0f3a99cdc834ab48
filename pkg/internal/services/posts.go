package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// AuthorRef describes the requested author attribution for a post.
type AuthorRef struct {
	ProfileID uint `json:"profile_id" validate:"required"`
	IsPrimary bool `json:"is_primary"`
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			WithLowAccuracyMode().
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}

func FilterPostWithType(tx *gorm.DB, t string) *gorm.DB {
	return tx.Where("type = ?", t)
}

// FilterPostWithAuthor narrows posts to those attributed to the named
// author profile.
func FilterPostWithAuthor(tx *gorm.DB, name string) *gorm.DB {
	sub := database.C.Model(&models.PostAuthor{}).
		Select("post_authors.post_id").
		Joins("JOIN profiles ON profiles.id = post_authors.profile_id").
		Where("profiles.name = ? AND profiles.deleted_at IS NULL", name)
	return tx.Where("posts.id IN (?)", sub)
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.
		Where("? AND body->>'content' ILIKE ?", gorm.Expr("body ? 'content'"), probe).
		Or("? AND body->>'title' ILIKE ?", gorm.Expr("body ? 'title'"), probe).
		Or("? AND body->>'description' ILIKE ?", gorm.Expr("body ? 'description'"), probe)
}

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Account").
		Preload("Authors").
		Preload("Authors.Profile")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadPostGeneral(tx).
		Where("posts.id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]*models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Post
	if err := PreloadPostGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

// ValidateAuthorRefs checks the shape of an attribution set: at least one
// author, exactly one primary, no profile referenced twice.
func ValidateAuthorRefs(authors []AuthorRef) error {
	if len(authors) == 0 {
		return ErrInvalidAuthors
	}
	primaries := lo.CountBy(authors, func(ref AuthorRef) bool { return ref.IsPrimary })
	if primaries != 1 {
		return ErrInvalidAuthors
	}

	seen := map[uint]bool{}
	for _, ref := range authors {
		if seen[ref.ProfileID] {
			return ErrInvalidAuthors
		}
		seen[ref.ProfileID] = true
	}
	return nil
}

// checkPostAuthors validates the attribution set and then requires every
// referenced profile to be alive and editable by the acting account.
func checkPostAuthors(user models.Account, authors []AuthorRef) error {
	if err := ValidateAuthorRefs(authors); err != nil {
		return err
	}

	for _, ref := range authors {
		var profile models.Profile
		if err := database.C.Where("id = ?", ref.ProfileID).First(&profile).Error; err != nil {
			return fmt.Errorf("author profile not found: %v", err)
		}
		if !CanEditProfile(profile, user.ID) {
			return fmt.Errorf("author profile #%d is not yours to write as", ref.ProfileID)
		}
	}
	return nil
}

func NewPost(user models.Account, item models.Post, authors []AuthorRef) (models.Post, error) {
	if !lo.Contains(models.PostTypes, item.Type) {
		return item, ErrInvalidType
	}
	if err := checkPostAuthors(user, authors); err != nil {
		return item, err
	}

	item.AccountID = user.ID
	if item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}
	if content, ok := item.Body["content"].(string); ok {
		item.Language = DetectLanguage(content)
	}

	start := time.Now()
	// The post row and its author rows land in one transaction.
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		for _, ref := range authors {
			if err := tx.Create(&models.PostAuthor{
				PostID:    item.ID,
				ProfileID: ref.ProfileID,
				IsPrimary: ref.IsPrimary,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return item, err
	}

	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is posted.")
	return item, nil
}

func EditPost(user models.Account, item models.Post, authors []AuthorRef) (models.Post, error) {
	if err := checkPostAuthors(user, authors); err != nil {
		return item, err
	}

	item.EditedAt = lo.ToPtr(time.Now())
	if content, ok := item.Body["content"].(string); ok {
		item.Language = DetectLanguage(content)
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.PostAuthor{}).Error; err != nil {
			return err
		}
		for _, ref := range authors {
			if err := tx.Create(&models.PostAuthor{
				PostID:    item.ID,
				ProfileID: ref.ProfileID,
				IsPrimary: ref.IsPrimary,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return item, err
}

func DeletePost(item models.Post) error {
	return database.C.Delete(&item).Error
}

const TruncatePostContentThreshold = 512

// TruncatePostContent trims long bodies for list responses. Slicing happens
// on runes so multibyte content stays valid UTF-8.
func TruncatePostContent(item models.Post) models.Post {
	if content, ok := item.Body["content"].(string); ok {
		runes := []rune(content)
		item.Body["content_length"] = len(runes)
		if len(runes) > TruncatePostContentThreshold {
			item.Body["content"] = string(runes[:TruncatePostContentThreshold]) + "..."
			item.Body["content_truncated"] = true
		}
	}
	return item
}
