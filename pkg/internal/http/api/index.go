package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/services"
	"gorm.io/gorm"
)

func MapAPIs(app *fiber.App) {
	api := app.Group("/api").Name("API")
	{
		accounts := api.Group("/accounts").Name("Accounts API")
		{
			accounts.Post("/signup", signupAccount)
			accounts.Post("/login", loginAccount)
			accounts.Post("/logout", logoutAccount)
			accounts.Post("/refresh", refreshAccountToken)
			accounts.Get("/me", getMyselfAccount)
		}

		profiles := api.Group("/profiles").Name("Profiles API")
		{
			profiles.Get("/", listProfile)
			profiles.Post("/", createProfile)
			profiles.Get("/:name", getProfile)
			profiles.Put("/:profileId", editProfile)
			profiles.Delete("/:profileId", deleteProfile)

			profiles.Get("/:profileId/editors", listProfileEditors)
			profiles.Post("/:profileId/editors", addProfileEditor)
			profiles.Delete("/:profileId/editors/:accountId", removeProfileEditor)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)

			posts.Get("/:postId/editors", listPostEditors)
			posts.Post("/:postId/editors", addPostEditor)
			posts.Delete("/:postId/editors/:accountId", removePostEditor)
		}

		collections := api.Group("/collections").Name("Collections API")
		{
			collections.Get("/", listCollection)
			collections.Post("/", createCollection)
			collections.Get("/:collectionId", getCollection)
			collections.Put("/:collectionId", editCollection)
			collections.Delete("/:collectionId", deleteCollection)

			collections.Post("/:collectionId/posts", addCollectionPost)
			collections.Delete("/:collectionId/posts/:postId", removeCollectionPost)
			collections.Put("/:collectionId/posts/:postId/position", moveCollectionPost)

			collections.Get("/:collectionId/editors", listCollectionEditors)
			collections.Post("/:collectionId/editors", addCollectionEditor)
			collections.Delete("/:collectionId/editors/:accountId", removeCollectionEditor)
		}

		api.Get("/catalog", searchCatalog).Name("Catalog API")

		uploads := api.Group("/uploads").Name("Uploads API")
		{
			uploads.Post("/", createUpload)
			uploads.Get("/:name", getUpload)
		}
	}
}

// statusFromError translates service sentinel errors into status codes;
// anything unrecognized counts as a validation failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyEditor):
		return fiber.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrBadCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

func serviceError(err error) *fiber.Error {
	return fiber.NewError(statusFromError(err), err.Error())
}
