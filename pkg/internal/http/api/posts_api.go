package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/events"
	"github.com/loreweave/loreweave/pkg/internal/http/exts"
	"github.com/loreweave/loreweave/pkg/internal/http/sec"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/loreweave/loreweave/pkg/internal/services"
	"gorm.io/gorm"
)

func universalPostFilter(c *fiber.Ctx, tx *gorm.DB) (*gorm.DB, error) {
	if len(c.Query("type")) > 0 {
		tx = services.FilterPostWithType(tx, c.Query("type"))
	}
	if len(c.Query("author")) > 0 {
		tx = services.FilterPostWithAuthor(tx, c.Query("author"))
	}
	if len(c.Query("probe")) > 0 {
		tx = services.FilterPostWithFuzzySearch(tx, c.Query("probe"))
	}
	return tx, nil
}

func listPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := database.C

	var err error
	if tx, err = universalPostFilter(c, tx); err != nil {
		return err
	}

	countTx := tx
	count, err := services.CountPost(countTx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListPost(tx, take, offset, "published_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if c.QueryBool("truncate", true) {
		for _, item := range items {
			if item != nil {
				*item = services.TruncatePostContent(*item)
			}
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(item)
}

type postPayload struct {
	Type        string               `json:"type" validate:"required"`
	Title       string               `json:"title" validate:"required,max=256"`
	Description *string              `json:"description"`
	Content     string               `json:"content" validate:"max=65536"`
	Thumbnail   *string              `json:"thumbnail"`
	Location    *string              `json:"location"`
	StartsAt    *time.Time           `json:"starts_at"`
	EndsAt      *time.Time           `json:"ends_at"`
	Attachments []string             `json:"attachments"`
	Authors     []services.AuthorRef `json:"authors" validate:"required,min=1,dive"`
	PublishedAt *time.Time           `json:"published_at"`
}

// buildPostBody shapes the typed body the way the storage layer keeps it:
// a JSON map built from the per-type body struct.
func buildPostBody(data postPayload) (map[string]any, error) {
	var body any
	switch data.Type {
	case models.PostTypeWriting:
		if len(data.Content) == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "writing posts require content")
		}
		body = models.PostWritingBody{
			Thumbnail:   data.Thumbnail,
			Title:       data.Title,
			Description: data.Description,
			Content:     data.Content,
			Attachments: data.Attachments,
		}
	case models.PostTypeArt:
		if len(data.Attachments) == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "art posts require attachments")
		}
		body = models.PostArtBody{
			Title:       data.Title,
			Description: data.Description,
			Attachments: data.Attachments,
		}
	case models.PostTypeMedia:
		if len(data.Attachments) == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "media posts require attachments")
		}
		body = models.PostMediaBody{
			Thumbnail:   data.Thumbnail,
			Title:       data.Title,
			Description: data.Description,
			Attachments: data.Attachments,
		}
	case models.PostTypeEvent:
		if data.StartsAt == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "event posts require starts_at")
		}
		body = models.PostEventBody{
			Thumbnail:   data.Thumbnail,
			Title:       data.Title,
			Description: data.Description,
			Content:     data.Content,
			Location:    data.Location,
			StartsAt:    data.StartsAt,
			EndsAt:      data.EndsAt,
			Attachments: data.Attachments,
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown post type")
	}

	var bodyMapping map[string]any
	rawBody, _ := jsoniter.Marshal(body)
	_ = jsoniter.Unmarshal(rawBody, &bodyMapping)
	return bodyMapping, nil
}

func createPost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data postPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	bodyMapping, err := buildPostBody(data)
	if err != nil {
		return err
	}

	item := models.Post{
		Type:        data.Type,
		Body:        bodyMapping,
		PublishedAt: data.PublishedAt,
	}

	item, err = services.NewPost(user, item, data.Authors)
	if err != nil {
		return serviceError(err)
	}

	events.Publish("posts.new", item.ID, user.ID)

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.CanEditPost(item, user.ID) {
		return fiber.NewError(fiber.StatusForbidden, "you are not an editor of this post")
	}

	var data postPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if data.Type != item.Type {
		return fiber.NewError(fiber.StatusBadRequest, "post type cannot be changed")
	}

	bodyMapping, err := buildPostBody(data)
	if err != nil {
		return err
	}

	item.Body = bodyMapping
	if data.PublishedAt != nil {
		item.PublishedAt = data.PublishedAt
	}

	if item, err = services.EditPost(user, item, data.Authors); err != nil {
		return serviceError(err)
	}

	events.Publish("posts.edit", item.ID, user.ID)

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AccountID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the owner can delete a post")
	}

	if err := services.DeletePost(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	events.Publish("posts.delete", item.ID, user.ID)

	return c.SendStatus(fiber.StatusOK)
}

func getOwnedPost(c *fiber.Ctx) (models.Post, models.Account, error) {
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return item, user, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if item.AccountID != user.ID {
		return item, user, fiber.NewError(fiber.StatusForbidden, "only the owner can manage editors")
	}
	return item, user, nil
}

func listPostEditors(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	editors, err := services.ListPostEditors(item)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(editors)
}

func addPostEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	item, user, err := getOwnedPost(c)
	if err != nil {
		return err
	}

	var data struct {
		Account string `json:"account" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	editor, err := services.GetAccountByName(data.Account)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.AddPostEditor(user, item, editor); err != nil {
		return serviceError(err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func removePostEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	item, _, err := getOwnedPost(c)
	if err != nil {
		return err
	}

	accountID, _ := c.ParamsInt("accountId", 0)
	if err := services.RemovePostEditor(item, uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
