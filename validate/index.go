package validate

import (
	"errors"
	"strconv"

	"hotel_manager/constants"
	"hotel_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseUint(params, 10, 32)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		// Save input to context locals
		c.Locals(key, uint(valueKey))

		// Continue to next handler
		return c.Next()
	}
}

// query binds and validates query parameters into T and stores it under localsKey.
func query[T any](localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals(localsKey, input)
		return c.Next()
	}
}

// body is the JSON counterpart of query.
func body[T any](localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals(localsKey, input)
		return c.Next()
	}
}
