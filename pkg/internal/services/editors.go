package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/loreweave/loreweave/pkg/internal/cache"
	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/mailer"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	EditorKindProfile    = "profile"
	EditorKindPost       = "post"
	EditorKindCollection = "collection"
)

func editorCacheKey(kind string, resourceID uint) string {
	return fmt.Sprintf("editors#%s#%d", kind, resourceID)
}

func listEditorAccountIDs(kind string, resourceID uint) ([]uint, error) {
	var ids []uint
	var err error
	switch kind {
	case EditorKindProfile:
		err = database.C.Model(&models.ProfileEditor{}).
			Where("profile_id = ?", resourceID).
			Pluck("account_id", &ids).Error
	case EditorKindPost:
		err = database.C.Model(&models.PostEditor{}).
			Where("post_id = ?", resourceID).
			Pluck("account_id", &ids).Error
	case EditorKindCollection:
		err = database.C.Model(&models.CollectionEditor{}).
			Where("collection_id = ?", resourceID).
			Pluck("account_id", &ids).Error
	default:
		err = fmt.Errorf("unknown editor kind: %s", kind)
	}
	return ids, err
}

// IsEditor answers whether the account holds a delegated editor grant on the
// resource. Results are cached for a short window and flushed on every
// grant or revoke.
func IsEditor(kind string, resourceID, accountID uint) bool {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	var ids []uint
	if val, err := marshal.Get(ctx, editorCacheKey(kind, resourceID), new([]uint)); err == nil {
		ids = *(val.(*[]uint))
	} else {
		ids, err = listEditorAccountIDs(kind, resourceID)
		if err != nil {
			log.Warn().Err(err).Str("kind", kind).Uint("resource", resourceID).
				Msg("An error occurred when loading editor grants...")
			return false
		}
		_ = marshal.Set(
			ctx,
			editorCacheKey(kind, resourceID),
			ids,
			store.WithExpiration(5*time.Minute),
			store.WithTags([]string{"editors", fmt.Sprintf("%s#%d", kind, resourceID)}),
		)
	}

	return lo.Contains(ids, accountID)
}

func flushEditorCache(kind string, resourceID uint) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	_ = marshal.Delete(context.Background(), editorCacheKey(kind, resourceID))
}

func notifyEditorInvite(granter models.Account, editor models.Account, kind, name string) {
	if !mailer.Enabled() || len(editor.Email) == 0 {
		return
	}
	go func() {
		if err := mailer.Send(
			editor.Email,
			"You were added as an editor",
			mailer.EditorInviteHTML(granter.Nick, kind, name),
		); err != nil {
			log.Warn().Err(err).Str("to", editor.Email).Msg("An error occurred when sending editor invite...")
		}
	}()
}

func ListProfileEditors(profile models.Profile) ([]models.ProfileEditor, error) {
	var editors []models.ProfileEditor
	err := database.C.Where("profile_id = ?", profile.ID).
		Preload("Account").
		Find(&editors).Error
	return editors, err
}

func AddProfileEditor(granter models.Account, profile models.Profile, editor models.Account) error {
	if editor.ID == profile.AccountID {
		return ErrOwnerAsEditor
	}

	var count int64
	if err := database.C.Model(&models.ProfileEditor{}).
		Where("profile_id = ? AND account_id = ?", profile.ID, editor.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyEditor
	}

	if err := database.C.Create(&models.ProfileEditor{
		ProfileID: profile.ID,
		AccountID: editor.ID,
	}).Error; err != nil {
		return err
	}

	flushEditorCache(EditorKindProfile, profile.ID)
	notifyEditorInvite(granter, editor, EditorKindProfile, profile.Name)
	return nil
}

func RemoveProfileEditor(profile models.Profile, accountID uint) error {
	if err := database.C.
		Where("profile_id = ? AND account_id = ?", profile.ID, accountID).
		Delete(&models.ProfileEditor{}).Error; err != nil {
		return err
	}
	flushEditorCache(EditorKindProfile, profile.ID)
	return nil
}

func ListPostEditors(post models.Post) ([]models.PostEditor, error) {
	var editors []models.PostEditor
	err := database.C.Where("post_id = ?", post.ID).
		Preload("Account").
		Find(&editors).Error
	return editors, err
}

func AddPostEditor(granter models.Account, post models.Post, editor models.Account) error {
	if editor.ID == post.AccountID {
		return ErrOwnerAsEditor
	}

	var count int64
	if err := database.C.Model(&models.PostEditor{}).
		Where("post_id = ? AND account_id = ?", post.ID, editor.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyEditor
	}

	if err := database.C.Create(&models.PostEditor{
		PostID:    post.ID,
		AccountID: editor.ID,
	}).Error; err != nil {
		return err
	}

	flushEditorCache(EditorKindPost, post.ID)
	title, _ := post.Body["title"].(string)
	notifyEditorInvite(granter, editor, EditorKindPost, title)
	return nil
}

func RemovePostEditor(post models.Post, accountID uint) error {
	if err := database.C.
		Where("post_id = ? AND account_id = ?", post.ID, accountID).
		Delete(&models.PostEditor{}).Error; err != nil {
		return err
	}
	flushEditorCache(EditorKindPost, post.ID)
	return nil
}

func ListCollectionEditors(collection models.Collection) ([]models.CollectionEditor, error) {
	var editors []models.CollectionEditor
	err := database.C.Where("collection_id = ?", collection.ID).
		Preload("Account").
		Find(&editors).Error
	return editors, err
}

func AddCollectionEditor(granter models.Account, collection models.Collection, editor models.Account) error {
	if editor.ID == collection.AccountID {
		return ErrOwnerAsEditor
	}

	var count int64
	if err := database.C.Model(&models.CollectionEditor{}).
		Where("collection_id = ? AND account_id = ?", collection.ID, editor.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyEditor
	}

	if err := database.C.Create(&models.CollectionEditor{
		CollectionID: collection.ID,
		AccountID:    editor.ID,
	}).Error; err != nil {
		return err
	}

	flushEditorCache(EditorKindCollection, collection.ID)
	notifyEditorInvite(granter, editor, EditorKindCollection, collection.Name)
	return nil
}

func RemoveCollectionEditor(collection models.Collection, accountID uint) error {
	if err := database.C.
		Where("collection_id = ? AND account_id = ?", collection.ID, accountID).
		Delete(&models.CollectionEditor{}).Error; err != nil {
		return err
	}
	flushEditorCache(EditorKindCollection, collection.ID)
	return nil
}

// Edit authority helpers. Ownership is the default authority; editor grants
// add to it but never replace it.

func CanEditProfile(profile models.Profile, accountID uint) bool {
	if profile.AccountID == accountID {
		return true
	}
	return IsEditor(EditorKindProfile, profile.ID, accountID)
}

func CanEditPost(post models.Post, accountID uint) bool {
	if post.AccountID == accountID {
		return true
	}
	return IsEditor(EditorKindPost, post.ID, accountID)
}

func CanEditCollection(collection models.Collection, accountID uint) bool {
	if collection.AccountID == accountID {
		return true
	}
	return IsEditor(EditorKindCollection, collection.ID, accountID)
}
