package services

import "errors"

// Sentinel errors let the API layer pick the right status code (409 for
// uniqueness conflicts, 400 for validation, 404 for missing rows).
var (
	ErrNameTaken        = errors.New("name is already in use")
	ErrEmailTaken       = errors.New("email is already in use")
	ErrInvalidType      = errors.New("unknown type")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidParent    = errors.New("parent must be a character you own")
	ErrInvalidAuthors   = errors.New("posts require exactly one primary author profile")
	ErrIncompatibleType = errors.New("collection does not accept posts of this type")
	ErrAlreadyMember    = errors.New("post is already a member of this collection")
	ErrAlreadyEditor    = errors.New("account is already an editor")
	ErrOwnerAsEditor    = errors.New("owner cannot be added as an editor")
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrBadQuery         = errors.New("unsupported catalog query")
	ErrUploadTooLarge   = errors.New("uploaded file is too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
