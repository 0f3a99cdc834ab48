package exts

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupShape struct {
	Name  string `json:"name" validate:"required,min=4,max=16"`
	Email string `json:"email" validate:"required,email"`
}

func newBindApp() *fiber.App {
	app := fiber.New()
	app.Post("/signup", func(c *fiber.Ctx) error {
		var data signupShape
		if err := BindAndValidate(c, &data); err != nil {
			return err
		}
		return c.JSON(data)
	})
	return app
}

func TestBindAndValidateAcceptsValidPayload(t *testing.T) {
	app := newBindApp()

	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"name": "aldric", "email": "aldric@example.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBindAndValidateRejectsInvalidPayload(t *testing.T) {
	app := newBindApp()

	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"name": "al", "email": "not-an-email"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBindAndValidateRejectsMalformedBody(t *testing.T) {
	app := newBindApp()

	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"name":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
