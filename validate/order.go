package validate

import (
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return body[model.CreateOrderInput]("inputCreateOrder")
}
