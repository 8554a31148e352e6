package handler

import (
	"errors"

	"hotel_manager/constants"
	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

const qrSize = 256

// ValidateRoom tells the guest portal whether an order may be placed against a room.
func (h *Handler) ValidateRoom(c *fiber.Ctx) error {
	input := c.Locals("inputRoomLookup").(model.RoomLookupQuery)
	ctx := c.UserContext()

	asOf, err := h.svc.Clock.Today(ctx, input.HotelID, h.now())
	if err != nil {
		return h.fail(c, err)
	}

	result, err := h.svc.Eligibility.ValidateRoomForOrder(ctx, input.RoomNumber, input.HotelID, input.GuestName, asOf)
	if errors.Is(err, service.ErrRoomNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": constants.ROOM_NOT_FOUND,
			"error":   err.Error(),
			"data":    service.RoomValidation{Reason: service.ReasonRoomNotFound},
		})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

// RoomBookings is the staff diagnostic view: declared status next to every booking of the room.
func (h *Handler) RoomBookings(c *fiber.Ctx) error {
	input := c.Locals("inputRoomLookup").(model.RoomLookupQuery)
	ctx := c.UserContext()

	if ok, err := h.allowHotel(c, input.HotelID); !ok {
		return err
	}

	asOf, err := h.svc.Clock.Today(ctx, input.HotelID, h.now())
	if err != nil {
		return h.fail(c, err)
	}

	diagnosis, err := h.svc.Reconciler.DiagnoseRoomByNumber(ctx, input.HotelID, input.RoomNumber, asOf)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, diagnosis)
}

func (h *Handler) UpdateRoomStatus(c *fiber.Ctx) error {
	roomId := idParam(c, "roomId")
	input := c.Locals("inputUpdateRoomStatus").(model.UpdateRoomStatusInput)
	ctx := c.UserContext()

	room, _, err := h.svc.Hotels.Room(ctx, roomId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, room.HotelID); !ok {
		return err
	}

	updated, err := h.svc.RoomStatus.Transition(ctx, roomId, input.Expected, input.Status, "staff")
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// RoomQRCode renders the PNG printed in the room, linking to the guest ordering portal.
func (h *Handler) RoomQRCode(c *fiber.Ctx) error {
	roomId := idParam(c, "roomId")
	ctx := c.UserContext()

	room, hotel, err := h.svc.Hotels.Room(ctx, roomId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, room.HotelID); !ok {
		return err
	}

	png, err := utils.GenerateQRCode(utils.RoomPortalURL(h.portalBaseURL, hotel.Slug, room.RoomNumber), qrSize)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
