package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/events"
	"github.com/loreweave/loreweave/pkg/internal/http/exts"
	"github.com/loreweave/loreweave/pkg/internal/http/sec"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/loreweave/loreweave/pkg/internal/services"
)

func listCollection(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := database.C
	if len(c.Query("type")) > 0 {
		tx = services.FilterCollectionWithType(tx, c.Query("type"))
	}
	if len(c.Query("author")) > 0 {
		owner, err := services.GetAccountByName(c.Query("author"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		tx = services.FilterCollectionWithOwner(tx, owner.ID)
	}

	countTx := tx
	count, err := services.CountCollection(countTx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListCollection(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getCollection(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	members, err := services.ListCollectionPosts(collection)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"collection": collection,
		"posts":      members,
	})
}

type collectionPayload struct {
	Type        string `json:"type" validate:"required"`
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=4096"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`
}

func createCollection(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data collectionPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	collection, err := services.NewCollection(user, models.Collection{
		Type:        data.Type,
		Name:        data.Name,
		Description: data.Description,
		Avatar:      data.Avatar,
		Banner:      data.Banner,
	})
	if err != nil {
		return serviceError(err)
	}

	events.Publish("collections.new", collection.ID, user.ID)

	return c.Status(fiber.StatusCreated).JSON(collection)
}

func editCollection(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.CanEditCollection(collection, user.ID) {
		return fiber.NewError(fiber.StatusForbidden, "you are not an editor of this collection")
	}

	var data collectionPayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// Type is immutable; changing it could strand incompatible members.
	collection.Name = data.Name
	collection.Description = data.Description
	collection.Avatar = data.Avatar
	collection.Banner = data.Banner

	if collection, err = services.EditCollection(collection); err != nil {
		return serviceError(err)
	}

	events.Publish("collections.edit", collection.ID, user.ID)

	return c.JSON(collection)
}

func deleteCollection(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if collection.AccountID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the owner can delete a collection")
	}

	if err := services.DeleteCollection(collection); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	events.Publish("collections.delete", collection.ID, user.ID)

	return c.SendStatus(fiber.StatusOK)
}

func getEditableCollection(c *fiber.Ctx) (models.Collection, models.Account, error) {
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return collection, user, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.CanEditCollection(collection, user.ID) {
		return collection, user, fiber.NewError(fiber.StatusForbidden, "you are not an editor of this collection")
	}
	return collection, user, nil
}

func addCollectionPost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	collection, user, err := getEditableCollection(c)
	if err != nil {
		return err
	}

	var data struct {
		Post     uint `json:"post" validate:"required"`
		Position *int `json:"position"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	post, err := services.GetPost(database.C, data.Post)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	member, err := services.AddCollectionPost(collection, post, data.Position)
	if err != nil {
		return serviceError(err)
	}

	events.Publish("collections.posts.add", collection.ID, user.ID)

	return c.Status(fiber.StatusCreated).JSON(member)
}

func removeCollectionPost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	collection, user, err := getEditableCollection(c)
	if err != nil {
		return err
	}

	postID, _ := c.ParamsInt("postId", 0)
	if err := services.RemoveCollectionPost(collection, uint(postID)); err != nil {
		return serviceError(err)
	}

	events.Publish("collections.posts.remove", collection.ID, user.ID)

	return c.SendStatus(fiber.StatusOK)
}

func moveCollectionPost(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	collection, _, err := getEditableCollection(c)
	if err != nil {
		return err
	}

	var data struct {
		Position int `json:"position" validate:"min=0"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	postID, _ := c.ParamsInt("postId", 0)
	if err := services.MoveCollectionPost(collection, uint(postID), data.Position); err != nil {
		return serviceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func getOwnedCollection(c *fiber.Ctx) (models.Collection, models.Account, error) {
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return collection, user, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if collection.AccountID != user.ID {
		return collection, user, fiber.NewError(fiber.StatusForbidden, "only the owner can manage editors")
	}
	return collection, user, nil
}

func listCollectionEditors(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("collectionId", 0)

	collection, err := services.GetCollection(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	editors, err := services.ListCollectionEditors(collection)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(editors)
}

func addCollectionEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	collection, user, err := getOwnedCollection(c)
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

	if err := services.AddCollectionEditor(user, collection, editor); err != nil {
		return serviceError(err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func removeCollectionEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	collection, _, err := getOwnedCollection(c)
	if err != nil {
		return err
	}

	accountID, _ := c.ParamsInt("accountId", 0)
	if err := services.RemoveCollectionEditor(collection, uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
