package middleware

import (
	"errors"
	"strings"

	"hotel_manager/constants"
	"hotel_manager/helper"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected admits hotel staff holding a valid access token, from the cookie or a Bearer header.
func Protected(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(key, token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		claim, err := helper.ClaimFromToken(jwtToken)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, err)
		}

		helper.SetStaff(c, claim)
		return c.Next()
	}
}
