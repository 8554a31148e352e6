package service

import (
	"context"
	"fmt"
	"time"

	"hotel_manager/model"

	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PromotionAdmin struct {
	promotions PromotionStore
	hotels     HotelDirectory
	clock      *HotelClock
	l          logrus.FieldLogger
}

func NewPromotionAdmin(promotions PromotionStore, hotels HotelDirectory, clock *HotelClock, l logrus.FieldLogger) *PromotionAdmin {
	return &PromotionAdmin{promotions: promotions, hotels: hotels, clock: clock, l: l}
}

func ValidatePromotionInput(input *model.PromotionInput) error {
	inputErr := NewInputError()

	switch input.DiscountType {
	case model.DiscountPercentage:
		if !input.DiscountValue.IsPositive() || input.DiscountValue.GreaterThan(hundred) {
			inputErr.Add("discountValue", "percentage must be greater than 0 and at most 100")
		}
	case model.DiscountFixedAmount:
		if !input.DiscountValue.IsPositive() {
			inputErr.Add("discountValue", "amount must be greater than 0")
		}
	case model.DiscountFreeItem:
		if input.DiscountValue.IsNegative() {
			inputErr.Add("discountValue", "must not be negative")
		}
	default:
		inputErr.Add("discountType", "must be percentage, fixed_amount or free_item")
	}

	if input.MinOrderAmount.IsNegative() {
		inputErr.Add("minOrderAmount", "must not be negative")
	}
	if input.MaxDiscountAmount != nil && !input.MaxDiscountAmount.IsPositive() {
		inputErr.Add("maxDiscountAmount", "must be greater than 0")
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		inputErr.Add("endDate", "must not be before startDate")
	}
	if input.StartTime != nil && input.EndTime != nil && *input.StartTime == *input.EndTime {
		inputErr.Add("endTime", "must differ from startTime")
	}
	seen := map[int64]bool{}
	for _, d := range input.DaysOfWeek {
		if d < 0 || d > 6 {
			inputErr.Add("daysOfWeek", "days are 0 (Sunday) to 6 (Saturday)")
		}
		if seen[d] {
			inputErr.Add("daysOfWeek", "days must not repeat")
		}
		seen[d] = true
	}
	if !input.AppliesToAllProducts && len(input.AppliesToServiceTypes) == 0 {
		inputErr.Add("appliesToServiceTypes", "provide service types or set appliesToAllProducts")
	}

	return inputErr.Err()
}

// applyPromotionInput overwrites every editable field of p.
func applyPromotionInput(p *model.Promotion, input *model.PromotionInput) error {
	if err := copier.Copy(p, input); err != nil {
		return fmt.Errorf("copy promotion input: %w", err)
	}

	p.IsActive = input.IsActive == nil || *input.IsActive
	p.StartDate = input.StartDate
	p.EndDate = input.EndDate
	p.StartTime = input.StartTime
	p.EndTime = input.EndTime
	p.DaysOfWeek = pq.Int64Array(input.DaysOfWeek)
	p.AppliesToServiceTypes = pq.StringArray(input.AppliesToServiceTypes)
	p.DiscountValue = input.DiscountValue
	p.MinOrderAmount = input.MinOrderAmount
	p.MaxDiscountAmount = decimal.NullDecimal{}
	if input.MaxDiscountAmount != nil {
		p.MaxDiscountAmount = decimal.NewNullDecimal(*input.MaxDiscountAmount)
	}
	return nil
}

func (a *PromotionAdmin) List(ctx context.Context, hotelID uint) ([]model.Promotion, error) {
	if _, err := a.hotels.GetHotel(ctx, hotelID); err != nil {
		return nil, fmt.Errorf("get hotel %d: %w", hotelID, err)
	}
	promotions, err := a.promotions.ListPromotions(ctx, hotelID, PromotionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list promotions of hotel %d: %w", hotelID, err)
	}
	return promotions, nil
}

func (a *PromotionAdmin) Get(ctx context.Context, id uint) (*model.Promotion, error) {
	promotion, err := a.promotions.GetPromotion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get promotion %d: %w", id, err)
	}
	return promotion, nil
}

func (a *PromotionAdmin) Create(ctx context.Context, hotelID uint, input model.PromotionInput) (*model.Promotion, error) {
	if err := ValidatePromotionInput(&input); err != nil {
		return nil, err
	}
	if _, err := a.hotels.GetHotel(ctx, hotelID); err != nil {
		return nil, fmt.Errorf("get hotel %d: %w", hotelID, err)
	}

	promotion := &model.Promotion{HotelID: hotelID}
	if err := applyPromotionInput(promotion, &input); err != nil {
		return nil, err
	}
	if err := a.promotions.CreatePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	return promotion, nil
}

func (a *PromotionAdmin) Update(ctx context.Context, id uint, input model.PromotionInput) (*model.Promotion, error) {
	if err := ValidatePromotionInput(&input); err != nil {
		return nil, err
	}
	promotion, err := a.promotions.GetPromotion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get promotion %d: %w", id, err)
	}

	hotelID := promotion.HotelID
	if err := applyPromotionInput(promotion, &input); err != nil {
		return nil, err
	}
	promotion.ID = id
	promotion.HotelID = hotelID

	if err := a.promotions.UpdatePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("update promotion %d: %w", id, err)
	}
	return promotion, nil
}

func (a *PromotionAdmin) Delete(ctx context.Context, id uint) error {
	if err := a.promotions.SoftDeletePromotion(ctx, id); err != nil {
		return fmt.Errorf("delete promotion %d: %w", id, err)
	}
	return nil
}

// ExpireEnded deactivates promotions whose schedule has run out in each hotel's own timezone.
// An overnight window ending on its end date keeps running until its closing time the next morning.
func (a *PromotionAdmin) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	hotels, err := a.hotels.ListHotels(ctx)
	if err != nil {
		return 0, fmt.Errorf("list hotels: %w", err)
	}

	var total int64
	for _, h := range hotels {
		loc, err := a.clock.Location(ctx, h.ID)
		if err != nil {
			return total, err
		}
		at := LocalMomentOf(now, loc)

		promotions, err := a.promotions.ListPromotions(ctx, h.ID, PromotionFilter{ActiveOnly: true})
		if err != nil {
			return total, fmt.Errorf("list promotions of hotel %d: %w", h.ID, err)
		}
		var ended []uint
		for i := range promotions {
			if HasEnded(&promotions[i], at) {
				ended = append(ended, promotions[i].ID)
			}
		}
		if len(ended) == 0 {
			continue
		}

		n, err := a.promotions.DeactivatePromotions(ctx, ended)
		if err != nil {
			return total, fmt.Errorf("expire promotions of hotel %d: %w", h.ID, err)
		}
		a.l.WithFields(logrus.Fields{"hotel_id": h.ID, "count": n, "today": at.Date.String()}).
			Info("Expired ended promotions")
		total += n
	}
	return total, nil
}
