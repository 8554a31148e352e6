package validate

import (
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func PromotionQuery() fiber.Handler {
	return query[model.PromotionQuery]("inputPromotionQuery")
}

func PromotionInput() fiber.Handler {
	return body[model.PromotionInput]("inputPromotion")
}
