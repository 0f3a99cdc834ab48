package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/services"
)

func searchCatalog(c *fiber.Ctx) error {
	query := services.CatalogQuery{
		Kind:   c.Query("kind", services.CatalogKindAll),
		Type:   c.Query("type"),
		Probe:  c.Query("probe"),
		Order:  c.Query("order", services.CatalogOrderUpdated),
		Take:   c.QueryInt("take", 20),
		Offset: c.QueryInt("offset", 0),
	}

	count, entries, err := services.SearchCatalog(query)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  entries,
	})
}
