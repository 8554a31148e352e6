package service_test

import (
	"encoding/json"
	"errors"
	"testing"

	"hotel_manager/model"
	"hotel_manager/service"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func orderInput(hotelID uint, room, guest string) model.CreateOrderInput {
	return model.CreateOrderInput{
		HotelID:     hotelID,
		RoomNumber:  room,
		GuestName:   guest,
		ServiceType: "room_service",
		Items: []model.OrderItem{
			{Name: "Club sandwich", Quantity: 2, UnitPrice: dec("12.50")},
			{Name: "Lemonade", Quantity: 1, UnitPrice: dec("4.25")},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomOccupied)
	b := f.booking(t, room, "John Doe", "2024-06-13", "2024-06-16", model.BookingCheckedIn)
	promo := f.promotion(t, model.Promotion{
		Name: "Room service 10%", IsActive: true,
		DiscountType: model.DiscountPercentage, DiscountValue: dec("10"),
		AppliesToServiceTypes: pq.StringArray{"room_service"},
	})

	res, err := f.svc.Orders.PlaceOrder(f.ctx, orderInput(f.hotel.ID, "101", "john doe"), fridayAfternoon)
	if err != nil {
		t.Fatal(err)
	}

	o := res.Order
	if o == nil || o.ID == 0 {
		t.Fatalf("order not stored: %+v", o)
	}
	if o.BookingID == nil || *o.BookingID != b.ID || o.RoomID != room.ID {
		t.Errorf("order links booking %v room %d", o.BookingID, o.RoomID)
	}
	if o.Status != model.OrderPending || o.PaymentStatus != model.PaymentUnpaid {
		t.Errorf("status %s / %s", o.Status, o.PaymentStatus)
	}
	if !o.Subtotal.Equal(dec("29.25")) || !o.DiscountAmount.Equal(dec("2.93")) || !o.TotalAmount.Equal(dec("26.32")) {
		t.Errorf("amounts subtotal=%s discount=%s total=%s", o.Subtotal, o.DiscountAmount, o.TotalAmount)
	}
	if o.PromotionID == nil || *o.PromotionID != promo.ID {
		t.Errorf("promotion id = %v, want %d", o.PromotionID, promo.ID)
	}
	if o.Warning != "" {
		t.Errorf("unexpected warning %q", o.Warning)
	}
	if len(o.PublicCode) != len("ORD-")+8 {
		t.Errorf("public code %q", o.PublicCode)
	}

	var items []model.OrderItem
	if err := json.Unmarshal(o.Items, &items); err != nil || len(items) != 2 {
		t.Errorf("items = %s (%v)", o.Items, err)
	}

	pending, _ := f.db.ListPendingOrders(f.ctx, room.ID, &b.ID)
	if len(pending) != 1 {
		t.Errorf("pending orders = %d", len(pending))
	}
}

func TestPlaceOrderRejections(t *testing.T) {
	tests := []struct {
		name       string
		strict     bool
		guest      string
		room       string
		withBook   bool
		wantErr    error
		wantReason service.Reason
	}{
		{name: "no active booking", guest: "John Doe", room: "101", wantErr: service.ErrNoActiveBooking, wantReason: service.ReasonNoActiveBooking},
		{name: "strict name mismatch", strict: true, guest: "Jane Roe", room: "101", withBook: true, wantErr: service.ErrGuestNameMismatch, wantReason: service.ReasonGuestNameMismatch},
		{name: "unknown room", guest: "John Doe", room: "999", withBook: true, wantErr: service.ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(o *service.Options) { o.StrictGuestName = tt.strict })
			room := f.room(t, "101", model.RoomOccupied)
			if tt.withBook {
				f.booking(t, room, "John Doe", "2024-06-13", "2024-06-16", model.BookingCheckedIn)
			}

			res, err := f.svc.Orders.PlaceOrder(f.ctx, orderInput(f.hotel.ID, tt.room, tt.guest), fridayAfternoon)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if res.Validation.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", res.Validation.Reason, tt.wantReason)
			}
			if service.IsOrderRejection(err) != (tt.wantReason != "") {
				t.Errorf("IsOrderRejection(%v) mismatch", err)
			}
			if res.Order != nil {
				t.Error("no order may be stored")
			}
		})
	}
}

func TestPlaceOrderNameMismatchWarns(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomOccupied)
	b := f.booking(t, room, "John Doe", "2024-06-13", "2024-06-16", model.BookingCheckedIn)

	res, err := f.svc.Orders.PlaceOrder(f.ctx, orderInput(f.hotel.ID, "101", "Jane Roe"), fridayAfternoon)
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Warning == "" {
		t.Error("expected a stored warning")
	}
	if res.Order.BookingID == nil || *res.Order.BookingID != b.ID {
		t.Errorf("booking id = %v, want %d", res.Order.BookingID, b.ID)
	}
	if res.Validation.Booking != nil {
		t.Error("the validation must not expose another guest's booking")
	}
	if len(f.warnings()) == 0 {
		t.Error("expected a warning log")
	}
}

func TestPlaceOrderInvalidInput(t *testing.T) {
	f := newFixture(t)
	input := model.CreateOrderInput{
		HotelID:    f.hotel.ID,
		RoomNumber: "101",
		Items: []model.OrderItem{
			{Name: "", Quantity: 0, UnitPrice: dec("-1")},
		},
	}

	_, err := f.svc.Orders.PlaceOrder(f.ctx, input, fridayAfternoon)
	inputErr := service.AsInputError(err)
	if inputErr == nil {
		t.Fatalf("err = %v, want an input error", err)
	}
	for _, field := range []string{"items[0].name", "items[0].quantity", "items[0].unitPrice"} {
		if _, ok := inputErr.Fields()[field]; !ok {
			t.Errorf("missing field error %q in %v", field, inputErr.Fields())
		}
	}
}

func TestSubtotal(t *testing.T) {
	items := []model.OrderItem{
		{Name: "a", Quantity: 3, UnitPrice: dec("0.10")},
		{Name: "b", Quantity: 1, UnitPrice: decimal.Zero},
	}
	if got := service.Subtotal(items); !got.Equal(dec("0.30")) {
		t.Errorf("Subtotal() = %s", got)
	}
}
