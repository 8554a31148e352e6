package validate

import (
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func RoomLookup() fiber.Handler {
	return query[model.RoomLookupQuery]("inputRoomLookup")
}

func UpdateRoomStatus() fiber.Handler {
	return body[model.UpdateRoomStatusInput]("inputUpdateRoomStatus")
}
