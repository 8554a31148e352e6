package handler

import (
	"errors"

	"hotel_manager/constants"
	"hotel_manager/helper"
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateHotel is reserved for admins; hotel staff are bound to an existing hotel.
func (h *Handler) CreateHotel(c *fiber.Ctx) error {
	claim, ok := helper.GetStaffFromToken(c)
	if !ok || claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("admin only"))
	}
	input := c.Locals("inputCreateHotel").(model.CreateHotelInput)

	hotel, err := h.svc.Hotels.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, hotel)
}

func (h *Handler) GetHotelById(c *fiber.Ctx) error {
	hotelId := idParam(c, "hotelId")
	if ok, err := h.allowHotel(c, hotelId); !ok {
		return err
	}

	hotel, err := h.svc.Hotels.Get(c.UserContext(), hotelId)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, hotel)
}

func (h *Handler) GetRoomsByHotelId(c *fiber.Ctx) error {
	hotelId := idParam(c, "hotelId")
	if ok, err := h.allowHotel(c, hotelId); !ok {
		return err
	}

	rooms, err := h.svc.Hotels.Rooms(c.UserContext(), hotelId)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rooms)
}
