package handler

import (
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// ActivePromotions feeds the banner carousel.
func (h *Handler) ActivePromotions(c *fiber.Ctx) error {
	input := c.Locals("inputPromotionQuery").(model.PromotionQuery)

	promotions, err := h.svc.Promotions.ActivePromotions(c.UserContext(), input.HotelID, h.now())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

// PromotionForDiscount returns the single promotion a new order would get, or null.
func (h *Handler) PromotionForDiscount(c *fiber.Ctx) error {
	input := c.Locals("inputPromotionQuery").(model.PromotionQuery)

	promotion, err := h.svc.Promotions.SelectPromotionForDiscount(c.UserContext(), input.HotelID, input.ServiceType, h.now())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

func (h *Handler) GetPromotions(c *fiber.Ctx) error {
	hotelId := idParam(c, "hotelId")
	if ok, err := h.allowHotel(c, hotelId); !ok {
		return err
	}

	promotions, err := h.svc.PromoAdmin.List(c.UserContext(), hotelId)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

func (h *Handler) CreatePromotion(c *fiber.Ctx) error {
	hotelId := idParam(c, "hotelId")
	if ok, err := h.allowHotel(c, hotelId); !ok {
		return err
	}
	input := c.Locals("inputPromotion").(model.PromotionInput)

	promotion, err := h.svc.PromoAdmin.Create(c.UserContext(), hotelId, input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, promotion)
}

func (h *Handler) EditPromotion(c *fiber.Ctx) error {
	promotionId := idParam(c, "promotionId")
	input := c.Locals("inputPromotion").(model.PromotionInput)
	ctx := c.UserContext()

	existing, err := h.svc.PromoAdmin.Get(ctx, promotionId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, existing.HotelID); !ok {
		return err
	}

	promotion, err := h.svc.PromoAdmin.Update(ctx, promotionId, input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

func (h *Handler) DeletePromotion(c *fiber.Ctx) error {
	promotionId := idParam(c, "promotionId")
	ctx := c.UserContext()

	existing, err := h.svc.PromoAdmin.Get(ctx, promotionId)
	if err != nil {
		return h.fail(c, err)
	}
	if ok, err := h.allowHotel(c, existing.HotelID); !ok {
		return err
	}

	if err := h.svc.PromoAdmin.Delete(ctx, promotionId); err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": promotionId})
}
