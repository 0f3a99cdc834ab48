package sec

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/loreweave/loreweave/pkg/internal/security"
	"github.com/loreweave/loreweave/pkg/internal/services"
	"github.com/loreweave/loreweave/pkg/internal/session"
)

const CookieTokenName = "loreweave_token"

func tokenFromRequest(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 0 {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(CookieTokenName)
}

// ContextMiddleware resolves the bearer token (header or cookie) into an
// account stored in locals. Requests without a token pass through
// unauthenticated; requests with a bad token are rejected here.
func ContextMiddleware(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if len(token) == 0 {
		return c.Next()
	}

	claims, err := security.ParseAccess(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	if err := session.VerifyToken(c.UserContext(), claims.AccountID, token); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "session is no longer valid")
	}

	user, err := services.GetAccount(claims.AccountID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
	}

	c.Locals("user", user)
	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return nil
}
