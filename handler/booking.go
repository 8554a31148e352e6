package handler

import (
	"context"

	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) bookingChange(c *fiber.Ctx, change func(ctx context.Context, id uint) (*model.Booking, error)) error {
	bookingId := idParam(c, "bookingId")
	ctx := c.UserContext()

	booking, err := h.svc.Lifecycle.Booking(ctx, bookingId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, booking.HotelID); !ok {
		return err
	}

	updated, err := change(ctx, bookingId)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func (h *Handler) CheckIn(c *fiber.Ctx) error {
	return h.bookingChange(c, h.svc.Lifecycle.CheckIn)
}

func (h *Handler) CheckOut(c *fiber.Ctx) error {
	return h.bookingChange(c, h.svc.Lifecycle.CheckOut)
}

func (h *Handler) CheckoutInfo(c *fiber.Ctx) error {
	bookingId := idParam(c, "bookingId")
	ctx := c.UserContext()

	info, err := h.svc.Lifecycle.CheckoutInfo(ctx, bookingId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, info.Booking.HotelID); !ok {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, info)
}
