package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_manager/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type PlaceOrderResult struct {
	Order      *model.Order   `json:"order"`
	Validation RoomValidation `json:"validation"`
	Discount   Discount       `json:"discount"`
}

type OrderService struct {
	validator       *EligibilityValidator
	promotions      *PromotionEngine
	orders          OrderStore
	clock           *HotelClock
	strictGuestName bool
	l               logrus.FieldLogger
}

func NewOrderService(
	validator *EligibilityValidator,
	promotions *PromotionEngine,
	orders OrderStore,
	clock *HotelClock,
	strictGuestName bool,
	l logrus.FieldLogger,
) *OrderService {
	return &OrderService{
		validator:       validator,
		promotions:      promotions,
		orders:          orders,
		clock:           clock,
		strictGuestName: strictGuestName,
		l:               l,
	}
}

func validateOrderInput(input *model.CreateOrderInput) error {
	inputErr := NewInputError()

	if input.HotelID == 0 {
		inputErr.Add("hotelId", "provide hotelId")
	}
	if strings.TrimSpace(input.RoomNumber) == "" {
		inputErr.Add("roomNumber", "provide roomNumber")
	}
	if len(input.Items) == 0 {
		inputErr.Add("items", "provide at least one item")
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			inputErr.Add(fmt.Sprintf("items[%d].name", i), "provide a name")
		}
		if item.Quantity < 1 {
			inputErr.Add(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			inputErr.Add(fmt.Sprintf("items[%d].unitPrice", i), "unitPrice must not be negative")
		}
	}

	return inputErr.Err()
}

func Subtotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

func newPublicCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// PlaceOrder checks the room again at commit time, prices the order and stores it.
func (s *OrderService) PlaceOrder(ctx context.Context, input model.CreateOrderInput, now time.Time) (PlaceOrderResult, error) {
	if err := validateOrderInput(&input); err != nil {
		return PlaceOrderResult{}, err
	}

	asOf, err := s.clock.Today(ctx, input.HotelID, now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	validation, err := s.validator.ValidateRoomForOrder(ctx, input.RoomNumber, input.HotelID, input.GuestName, asOf)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	result := PlaceOrderResult{Validation: validation}

	var warning string
	switch validation.Reason {
	case ReasonNoActiveBooking:
		return result, ErrNoActiveBooking
	case ReasonGuestNameMismatch:
		if s.strictGuestName {
			return result, ErrGuestNameMismatch
		}
		warning = ErrGuestNameMismatch.Error()
	}

	// on a mismatch the validation hides the booking, resolve it again for the foreign key
	booking := validation.Booking
	if booking == nil {
		_, res, err := s.validator.reconciler.ResolveActiveBookingByRoomNumber(ctx, input.HotelID, input.RoomNumber, asOf)
		if err != nil {
			return result, err
		}
		booking = res.Booking
	}
	if booking == nil {
		return result, ErrNoActiveBooking
	}

	subtotal := Subtotal(input.Items)

	promotion, err := s.promotions.SelectPromotionForDiscount(ctx, input.HotelID, input.ServiceType, now)
	if err != nil {
		return result, fmt.Errorf("select promotion: %w", err)
	}
	result.Discount = ComputeDiscount(promotion, subtotal)

	items, err := json.Marshal(input.Items)
	if err != nil {
		return result, fmt.Errorf("encode order items: %w", err)
	}

	order := &model.Order{
		PublicCode:     newPublicCode(),
		HotelID:        input.HotelID,
		RoomID:         validation.Room.ID,
		BookingID:      &booking.ID,
		GuestName:      strings.TrimSpace(input.GuestName),
		ServiceType:    strings.TrimSpace(input.ServiceType),
		Status:         model.OrderPending,
		PaymentStatus:  model.PaymentUnpaid,
		Subtotal:       subtotal,
		DiscountAmount: result.Discount.Amount,
		TotalAmount:    subtotal.Sub(result.Discount.Amount),
		FreeItem:       result.Discount.FreeItem,
		Warning:        warning,
		Items:          datatypes.JSON(items),
	}
	if result.Discount.Applied {
		order.PromotionID = &result.Discount.PromotionID
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return result, fmt.Errorf("save order: %w", err)
	}
	result.Order = order

	entry := s.l.WithFields(logrus.Fields{
		"order_code": order.PublicCode,
		"hotel_id":   order.HotelID,
		"room_id":    order.RoomID,
		"booking_id": booking.ID,
		"total":      order.TotalAmount.StringFixed(2),
	})
	if warning != "" {
		entry.Warn("Order placed with guest name mismatch")
	} else {
		entry.Info("Order placed")
	}

	return result, nil
}

// IsOrderRejection reports errors that mean the room may not take orders right now.
func IsOrderRejection(err error) bool {
	return errors.Is(err, ErrNoActiveBooking) || errors.Is(err, ErrGuestNameMismatch)
}
