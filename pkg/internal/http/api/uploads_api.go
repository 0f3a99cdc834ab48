package api

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/http/sec"
	"github.com/loreweave/loreweave/pkg/internal/services"
	"github.com/spf13/viper"
)

func createUpload(c *fiber.Ctx) error {
	if err := sec.EnsureAuthenticated(c); err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file in request")
	}

	result, err := services.UploadFile(header)
	if err != nil {
		return serviceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func getUpload(c *fiber.Ctx) error {
	name, ok := services.SanitizeUploadName(c.Params("name"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file name")
	}

	dir := viper.GetString("paths.uploads")
	if len(dir) == 0 {
		dir = "uploads"
	}

	return c.SendFile(filepath.Join(dir, name))
}
