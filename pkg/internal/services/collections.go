package services

import (
	"fmt"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func checkCollectionNameAvailable(name string, accountID uint, excludeID *uint) error {
	tx := database.C.Model(&models.Collection{}).
		Where("name = ? AND account_id = ?", name, accountID)
	if excludeID != nil {
		tx = tx.Where("id != ?", *excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return fmt.Errorf("unable to count existing collections: %v", err)
	}
	if count > 0 {
		return ErrNameTaken
	}
	return nil
}

func NewCollection(user models.Account, collection models.Collection) (models.Collection, error) {
	if !lo.Contains(models.CollectionTypes, collection.Type) {
		return collection, ErrInvalidType
	}
	if len(collection.Name) == 0 {
		return collection, ErrInvalidName
	}
	if err := checkCollectionNameAvailable(collection.Name, user.ID, nil); err != nil {
		return collection, err
	}

	collection.AccountID = user.ID
	if err := database.C.Create(&collection).Error; err != nil {
		return collection, err
	}
	return collection, nil
}

func EditCollection(collection models.Collection) (models.Collection, error) {
	if len(collection.Name) == 0 {
		return collection, ErrInvalidName
	}
	if err := checkCollectionNameAvailable(collection.Name, collection.AccountID, &collection.ID); err != nil {
		return collection, err
	}

	err := database.C.Save(&collection).Error
	return collection, err
}

func DeleteCollection(collection models.Collection) error {
	return database.C.Delete(&collection).Error
}

func GetCollection(id uint) (models.Collection, error) {
	var collection models.Collection
	if err := database.C.
		Preload("Account").
		Where("id = ?", id).
		First(&collection).Error; err != nil {
		return collection, err
	}
	return collection, nil
}

func FilterCollectionWithType(tx *gorm.DB, t string) *gorm.DB {
	return tx.Where("type = ?", t)
}

func FilterCollectionWithOwner(tx *gorm.DB, accountID uint) *gorm.DB {
	return tx.Where("account_id = ?", accountID)
}

func CountCollection(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Collection{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListCollection(tx *gorm.DB, take int, offset int, order any) ([]models.Collection, error) {
	if take > 100 {
		take = 100
	}

	var collections []models.Collection
	if err := tx.
		Preload("Account").
		Limit(take).Offset(offset).
		Order(order).
		Find(&collections).Error; err != nil {
		return collections, err
	}
	return collections, nil
}

func ListCollectionPosts(collection models.Collection) ([]models.CollectionPost, error) {
	var members []models.CollectionPost
	err := database.C.
		Where("collection_id = ?", collection.ID).
		Preload("Post").
		Preload("Post.Authors").
		Preload("Post.Authors.Profile").
		Order("position").
		Find(&members).Error
	return members, err
}

func countCollectionPosts(tx *gorm.DB, collectionID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.CollectionPost{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}

// AddCollectionPost appends the post, or inserts it at position when given,
// shifting later members down. Type compatibility is checked here, at
// insertion, not by schema.
func AddCollectionPost(collection models.Collection, post models.Post, position *int) (models.CollectionPost, error) {
	var member models.CollectionPost

	if !models.CollectionAcceptsPostType(collection.Type, post.Type) {
		return member, ErrIncompatibleType
	}

	var count int64
	if err := database.C.Model(&models.CollectionPost{}).
		Where("collection_id = ? AND post_id = ?", collection.ID, post.ID).
		Count(&count).Error; err != nil {
		return member, err
	}
	if count > 0 {
		return member, ErrAlreadyMember
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		total, err := countCollectionPosts(tx, collection.ID)
		if err != nil {
			return err
		}

		pos := int(total)
		if position != nil && *position >= 0 && *position < int(total) {
			pos = *position
			if err := tx.Model(&models.CollectionPost{}).
				Where("collection_id = ? AND position >= ?", collection.ID, pos).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		}

		member = models.CollectionPost{
			CollectionID: collection.ID,
			PostID:       post.ID,
			Position:     pos,
		}
		return tx.Create(&member).Error
	})

	return member, err
}

// RemoveCollectionPost drops the membership row and closes the position gap.
func RemoveCollectionPost(collection models.Collection, postID uint) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		var member models.CollectionPost
		if err := tx.
			Where("collection_id = ? AND post_id = ?", collection.ID, postID).
			First(&member).Error; err != nil {
			return err
		}

		if err := tx.
			Where("collection_id = ? AND post_id = ?", collection.ID, postID).
			Delete(&models.CollectionPost{}).Error; err != nil {
			return err
		}

		return tx.Model(&models.CollectionPost{}).
			Where("collection_id = ? AND position > ?", collection.ID, member.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

// MoveCollectionPost reorders a member to the target position.
func MoveCollectionPost(collection models.Collection, postID uint, position int) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		var member models.CollectionPost
		if err := tx.
			Where("collection_id = ? AND post_id = ?", collection.ID, postID).
			First(&member).Error; err != nil {
			return err
		}

		total, err := countCollectionPosts(tx, collection.ID)
		if err != nil {
			return err
		}
		if position < 0 {
			position = 0
		}
		if position >= int(total) {
			position = int(total) - 1
		}
		if position == member.Position {
			return nil
		}

		if position < member.Position {
			if err := tx.Model(&models.CollectionPost{}).
				Where("collection_id = ? AND position >= ? AND position < ?", collection.ID, position, member.Position).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.CollectionPost{}).
				Where("collection_id = ? AND position > ? AND position <= ?", collection.ID, member.Position, position).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.CollectionPost{}).
			Where("collection_id = ? AND post_id = ?", collection.ID, postID).
			Update("position", position).Error
	})
}
