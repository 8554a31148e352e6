package validate

import (
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateHotel() fiber.Handler {
	return body[model.CreateHotelInput]("inputCreateHotel")
}
