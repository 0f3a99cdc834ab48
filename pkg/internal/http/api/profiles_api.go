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

func listProfile(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	tx := database.C
	if len(c.Query("type")) > 0 {
		tx = services.FilterProfileWithType(tx, c.Query("type"))
	}
	if len(c.Query("author")) > 0 {
		owner, err := services.GetAccountByName(c.Query("author"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		tx = services.FilterProfileWithOwner(tx, owner.ID)
	}

	countTx := tx
	count, err := services.CountProfile(countTx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListProfile(tx, take, offset, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func getProfile(c *fiber.Ctx) error {
	name := c.Params("name")

	profile, err := services.GetProfileByName(name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	children, err := services.ListProfileChildren(profile)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"profile":  profile,
		"children": children,
	})
}

type profilePayload struct {
	Type        string `json:"type" validate:"required"`
	Name        string `json:"name" validate:"required,max=64"`
	Nick        string `json:"nick" validate:"max=64"`
	Description string `json:"description" validate:"max=4096"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`
	ParentID    *uint  `json:"parent_id"`
}

func createProfile(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data profilePayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	profile, err := services.NewProfile(user, models.Profile{
		Type:        data.Type,
		Name:        data.Name,
		Nick:        data.Nick,
		Description: data.Description,
		Avatar:      data.Avatar,
		Banner:      data.Banner,
		ParentID:    data.ParentID,
	})
	if err != nil {
		return serviceError(err)
	}

	events.Publish("profiles.new", profile.ID, user.ID)

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func editProfile(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("profileId", 0)

	profile, err := services.GetProfile(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.CanEditProfile(profile, user.ID) {
		return fiber.NewError(fiber.StatusForbidden, "you are not an editor of this profile")
	}

	var data profilePayload
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// Type is immutable after creation.
	profile.Name = data.Name
	profile.Nick = data.Nick
	profile.Description = data.Description
	profile.Avatar = data.Avatar
	profile.Banner = data.Banner
	profile.ParentID = data.ParentID

	if profile, err = services.EditProfile(profile); err != nil {
		return serviceError(err)
	}

	events.Publish("profiles.edit", profile.ID, user.ID)

	return c.JSON(profile)
}

func deleteProfile(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("profileId", 0)

	profile, err := services.GetProfile(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if profile.AccountID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "only the owner can delete a profile")
	}

	if err := services.DeleteProfile(profile); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	events.Publish("profiles.delete", profile.ID, user.ID)

	return c.SendStatus(fiber.StatusOK)
}

// Editor management is owner-only; editors themselves cannot grant access.

func getOwnedProfile(c *fiber.Ctx) (models.Profile, models.Account, error) {
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("profileId", 0)

	profile, err := services.GetProfile(uint(id))
	if err != nil {
		return profile, user, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if profile.AccountID != user.ID {
		return profile, user, fiber.NewError(fiber.StatusForbidden, "only the owner can manage editors")
	}
	return profile, user, nil
}

func listProfileEditors(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("profileId", 0)

	profile, err := services.GetProfile(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	editors, err := services.ListProfileEditors(profile)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(editors)
}

func addProfileEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	profile, user, err := getOwnedProfile(c)
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

	if err := services.AddProfileEditor(user, profile, editor); err != nil {
		return serviceError(err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func removeProfileEditor(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	profile, _, err := getOwnedProfile(c)
	if err != nil {
		return err
	}

	accountID, _ := c.ParamsInt("accountId", 0)
	if err := services.RemoveProfileEditor(profile, uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
