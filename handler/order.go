package handler

import (
	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// PlaceOrder takes a guest order. Rejections carry the room validation so the portal can explain them.
func (h *Handler) PlaceOrder(c *fiber.Ctx) error {
	input := c.Locals("inputCreateOrder").(model.CreateOrderInput)

	result, err := h.svc.Orders.PlaceOrder(c.UserContext(), input, h.now())
	if service.IsOrderRejection(err) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": string(result.Validation.Reason),
			"error":   err.Error(),
			"data":    result.Validation,
		})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}
