package services

import (
	"fmt"
	"regexp"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var profileNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func ValidateProfileName(name string) error {
	if len(name) == 0 || len(name) > 64 || !profileNameRegexp.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// ProfileNameScopeGlobal reports whether the type's name uniqueness spans
// every account. Character names are shared namespace; other types only
// collide within the owning account.
func ProfileNameScopeGlobal(profileType string) bool {
	return profileType == models.ProfileTypeCharacter
}

// CheckProfileNameAvailable enforces the uniqueness scopes: character names
// are globally unique (case-sensitive) among non-deleted profiles, other
// types only within the owning account. Soft-deleted rows do not count, so
// deleting a profile frees its name.
func CheckProfileNameAvailable(profileType, name string, accountID uint, excludeID *uint) error {
	tx := database.C.Model(&models.Profile{}).Where("name = ?", name)
	if ProfileNameScopeGlobal(profileType) {
		tx = tx.Where("type = ?", models.ProfileTypeCharacter)
	} else {
		tx = tx.Where("type = ? AND account_id = ?", profileType, accountID)
	}
	if excludeID != nil {
		tx = tx.Where("id != ?", *excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return fmt.Errorf("unable to count existing profiles: %v", err)
	}
	if count > 0 {
		return ErrNameTaken
	}
	return nil
}

// profileParentAllowed validates a parent candidate against the profile's
// owner. Only characters may anchor a hierarchy, characters themselves stay
// parentless, and the parent must belong to the profile's owner even when a
// delegated editor is the one making the change.
func profileParentAllowed(parent models.Profile, ownerID uint, childType string) error {
	if childType == models.ProfileTypeCharacter {
		return ErrInvalidParent
	}
	if parent.Type != models.ProfileTypeCharacter || parent.AccountID != ownerID {
		return ErrInvalidParent
	}
	return nil
}

func checkProfileParent(ownerID uint, profileType string, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if profileType == models.ProfileTypeCharacter {
		return ErrInvalidParent
	}

	var parent models.Profile
	if err := database.C.
		Where("id = ?", *parentID).
		First(&parent).Error; err != nil {
		return ErrInvalidParent
	}
	return profileParentAllowed(parent, ownerID, profileType)
}

func NewProfile(user models.Account, profile models.Profile) (models.Profile, error) {
	if !lo.Contains(models.ProfileTypes, profile.Type) {
		return profile, ErrInvalidType
	}
	if err := ValidateProfileName(profile.Name); err != nil {
		return profile, err
	}
	if err := CheckProfileNameAvailable(profile.Type, profile.Name, user.ID, nil); err != nil {
		return profile, err
	}
	if err := checkProfileParent(user.ID, profile.Type, profile.ParentID); err != nil {
		return profile, err
	}

	profile.AccountID = user.ID
	if len(profile.Nick) == 0 {
		profile.Nick = profile.Name
	}

	if err := database.C.Create(&profile).Error; err != nil {
		return profile, err
	}
	return profile, nil
}

// EditProfile persists changes made by the owner or a delegated editor. The
// parent check runs against the owning account, not the actor, so an editor
// can neither lose a valid parent nor reparent under their own character.
func EditProfile(profile models.Profile) (models.Profile, error) {
	if err := ValidateProfileName(profile.Name); err != nil {
		return profile, err
	}
	if err := CheckProfileNameAvailable(profile.Type, profile.Name, profile.AccountID, &profile.ID); err != nil {
		return profile, err
	}
	if err := checkProfileParent(profile.AccountID, profile.Type, profile.ParentID); err != nil {
		return profile, err
	}

	err := database.C.Save(&profile).Error
	return profile, err
}

func DeleteProfile(profile models.Profile) error {
	return database.C.Delete(&profile).Error
}

func GetProfile(id uint) (models.Profile, error) {
	var profile models.Profile
	if err := database.C.
		Preload("Account").
		Preload("Parent").
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return profile, err
	}
	return profile, nil
}

func GetProfileByName(name string) (models.Profile, error) {
	var profile models.Profile
	if err := database.C.
		Preload("Account").
		Preload("Parent").
		Where("name = ?", name).
		First(&profile).Error; err != nil {
		return profile, err
	}
	return profile, nil
}

func FilterProfileWithType(tx *gorm.DB, t string) *gorm.DB {
	return tx.Where("type = ?", t)
}

func FilterProfileWithOwner(tx *gorm.DB, accountID uint) *gorm.DB {
	return tx.Where("account_id = ?", accountID)
}

func FilterProfileWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}
	probe = "%" + probe + "%"
	return tx.Where(
		"name ILIKE ? OR nick ILIKE ? OR description ILIKE ?",
		probe, probe, probe,
	)
}

func CountProfile(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListProfile(tx *gorm.DB, take int, offset int, order any) ([]models.Profile, error) {
	if take > 100 {
		take = 100
	}

	var profiles []models.Profile
	if err := tx.
		Preload("Account").
		Limit(take).Offset(offset).
		Order(order).
		Find(&profiles).Error; err != nil {
		return profiles, err
	}
	return profiles, nil
}

// ListProfileChildren lists the non-deleted profiles parented under a
// character (items, kinships, organizations, locations).
func ListProfileChildren(profile models.Profile) ([]models.Profile, error) {
	var children []models.Profile
	err := database.C.
		Where("parent_id = ?", profile.ID).
		Order("type, name").
		Find(&children).Error
	return children, err
}
