package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/events"
	"github.com/loreweave/loreweave/pkg/internal/http/exts"
	"github.com/loreweave/loreweave/pkg/internal/http/sec"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/loreweave/loreweave/pkg/internal/security"
	"github.com/loreweave/loreweave/pkg/internal/services"
)

func signupAccount(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,min=3,max=32,alphanum"`
		Nick     string `json:"nick" validate:"max=64"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.NewAccount(data.Name, data.Nick, data.Email, data.Password)
	if err != nil {
		return serviceError(err)
	}

	events.Publish("accounts.signup", account.ID, account.ID)

	return c.Status(fiber.StatusCreated).JSON(account)
}

func setTokenCookie(c *fiber.Ctx, pair security.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     sec.CookieTokenName,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(security.AccessTokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func loginAccount(c *fiber.Ctx) error {
	var data struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, pair, err := services.LoginAccount(c.UserContext(), data.Identifier, data.Password)
	if err != nil {
		return serviceError(err)
	}

	setTokenCookie(c, pair)

	return c.JSON(fiber.Map{
		"account":       account,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func logoutAccount(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.LogoutAccount(c.UserContext(), user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.ClearCookie(sec.CookieTokenName)
	return c.SendStatus(fiber.StatusOK)
}

func refreshAccountToken(c *fiber.Ctx) error {
	var data struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	pair, err := services.RefreshToken(c.UserContext(), data.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	setTokenCookie(c, pair)

	return c.JSON(pair)
}

func getMyselfAccount(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(user)
}
