package service

import (
	"hotel_manager/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is what a promotion takes off a subtotal. For free_item promotions Amount stays
// zero and FreeItem tells the caller to add the item.
type Discount struct {
	PromotionID uint               `json:"promotionId"`
	Type        model.DiscountType `json:"discountType"`
	Applied     bool               `json:"applied"`
	Amount      decimal.Decimal    `json:"amount"`
	FreeItem    bool               `json:"freeItem"`
}

func ComputeDiscount(p *model.Promotion, subtotal decimal.Decimal) Discount {
	d := Discount{Amount: decimal.Zero}
	if p == nil {
		return d
	}
	d.PromotionID = p.ID
	d.Type = p.DiscountType

	if subtotal.LessThanOrEqual(decimal.Zero) || subtotal.LessThan(p.MinOrderAmount) {
		return d
	}

	value := decimal.Max(p.DiscountValue, decimal.Zero)

	switch p.DiscountType {
	case model.DiscountPercentage:
		d.Amount = subtotal.Mul(value).Div(hundred)
	case model.DiscountFixedAmount:
		d.Amount = decimal.Min(value, subtotal)
	case model.DiscountFreeItem:
		d.Applied = true
		d.FreeItem = true
		return d
	default:
		return d
	}

	d.Amount = d.Amount.Round(2)
	if p.MaxDiscountAmount.Valid {
		d.Amount = decimal.Min(d.Amount, decimal.Max(p.MaxDiscountAmount.Decimal, decimal.Zero))
	}
	d.Applied = d.Amount.IsPositive()
	return d
}
