package services

import (
	"testing"

	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateProfileName(t *testing.T) {
	assert.NoError(t, ValidateProfileName("Aldric"))
	assert.NoError(t, ValidateProfileName("aldric_the-2nd.alt"))

	assert.ErrorIs(t, ValidateProfileName(""), ErrInvalidName)
	assert.ErrorIs(t, ValidateProfileName("has spaces"), ErrInvalidName)
	assert.ErrorIs(t, ValidateProfileName("slash/name"), ErrInvalidName)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidateProfileName(string(long)), ErrInvalidName)
}

func TestProfileNameScope(t *testing.T) {
	assert.True(t, ProfileNameScopeGlobal(models.ProfileTypeCharacter))

	assert.False(t, ProfileNameScopeGlobal(models.ProfileTypeItem))
	assert.False(t, ProfileNameScopeGlobal(models.ProfileTypeKinship))
	assert.False(t, ProfileNameScopeGlobal(models.ProfileTypeOrganization))
	assert.False(t, ProfileNameScopeGlobal(models.ProfileTypeLocation))
}

func TestProfileParentAllowed(t *testing.T) {
	ownerCharacter := models.Profile{Type: models.ProfileTypeCharacter, AccountID: 1}
	strangerCharacter := models.Profile{Type: models.ProfileTypeCharacter, AccountID: 2}
	ownerItem := models.Profile{Type: models.ProfileTypeItem, AccountID: 1}

	assert.NoError(t, profileParentAllowed(ownerCharacter, 1, models.ProfileTypeItem))

	// An editor's own character is not a valid parent for someone else's
	// profile.
	assert.ErrorIs(t, profileParentAllowed(strangerCharacter, 1, models.ProfileTypeItem), ErrInvalidParent)
	assert.ErrorIs(t, profileParentAllowed(ownerItem, 1, models.ProfileTypeLocation), ErrInvalidParent)
	assert.ErrorIs(t, profileParentAllowed(ownerCharacter, 1, models.ProfileTypeCharacter), ErrInvalidParent)
}

func TestDetectLanguageEmptyContent(t *testing.T) {
	assert.Equal(t, "", DetectLanguage(""))
	assert.Equal(t, "", DetectLanguage("   "))
}
