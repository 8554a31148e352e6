package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/store/memory"
	"hotel_manager/utils"
)

var now = time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

func newDB(t *testing.T) (*memory.DB, model.Hotel) {
	t.Helper()
	db := memory.New(memory.Config{Now: func() time.Time { return now }})
	hotel := model.Hotel{Name: "Lakeside", Slug: "lakeside"}
	if err := db.CreateHotel(context.Background(), &hotel); err != nil {
		t.Fatal(err)
	}
	return db, hotel
}

func TestRoomStatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)
	room := model.Room{HotelID: hotel.ID, RoomNumber: "101", Status: model.RoomAvailable}
	if err := db.CreateRoom(ctx, &room); err != nil {
		t.Fatal(err)
	}

	ok, err := db.UpdateRoomStatus(ctx, room.ID, model.RoomAvailable, model.RoomOccupied)
	if err != nil || !ok {
		t.Fatalf("first swap ok=%v err=%v", ok, err)
	}
	ok, err = db.UpdateRoomStatus(ctx, room.ID, model.RoomAvailable, model.RoomCleaning)
	if err != nil || ok {
		t.Fatalf("stale swap ok=%v err=%v", ok, err)
	}

	got, err := db.GetRoom(ctx, hotel.ID, "101")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.RoomOccupied {
		t.Errorf("status = %s, want occupied", got.Status)
	}

	if _, err := db.GetRoom(ctx, hotel.ID, "999"); !errors.Is(err, service.ErrRoomNotFound) {
		t.Errorf("missing room: err = %v", err)
	}
}

func TestStampKeepsCallerValues(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)
	earlier := now.Add(-48 * time.Hour)

	b := model.Booking{DTO: model.DTO{ID: 50, CreatedAt: earlier}, HotelID: hotel.ID, RoomID: 1, Status: model.BookingConfirmed}
	if err := db.CreateBooking(ctx, &b); err != nil {
		t.Fatal(err)
	}
	if !b.CreatedAt.Equal(earlier) || !b.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v", b.CreatedAt, b.UpdatedAt)
	}

	next := model.Booking{HotelID: hotel.ID, RoomID: 1, Status: model.BookingConfirmed}
	if err := db.CreateBooking(ctx, &next); err != nil {
		t.Fatal(err)
	}
	if next.ID != 51 {
		t.Errorf("next id = %d, want 51", next.ID)
	}
}

func TestListPendingOrders(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)

	current, previous := uint(7), uint(3)
	orders := []model.Order{
		{HotelID: hotel.ID, RoomID: 1, BookingID: &current, Status: model.OrderPending},
		{HotelID: hotel.ID, RoomID: 1, BookingID: &previous, Status: model.OrderPending},
		{HotelID: hotel.ID, RoomID: 1, Status: model.OrderPending},
		{HotelID: hotel.ID, RoomID: 1, BookingID: &current, Status: model.OrderDelivered},
		{HotelID: hotel.ID, RoomID: 2, BookingID: &current, Status: model.OrderPending},
	}
	for i := range orders {
		if err := db.CreateOrder(ctx, &orders[i]); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		bookingID *uint
		want      []uint
	}{
		{name: "current booking and unassigned", bookingID: &current, want: []uint{orders[0].ID, orders[2].ID}},
		{name: "no booking", want: []uint{orders[2].ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListPendingOrders(ctx, 1, tt.bookingID)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d orders, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("order[%d] = %d, want %d", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestListActiveBookings(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)

	bookings := []model.Booking{
		{HotelID: hotel.ID, RoomID: 1, GuestName: "Current", CheckInDate: mustDate("2024-06-13"), CheckOutDate: mustDate("2024-06-16"), Status: model.BookingCheckedIn},
		{HotelID: hotel.ID, RoomID: 1, GuestName: "Past", CheckInDate: mustDate("2024-06-01"), CheckOutDate: mustDate("2024-06-05"), Status: model.BookingCheckedIn},
		{HotelID: hotel.ID, RoomID: 1, GuestName: "Cancelled", CheckInDate: mustDate("2024-06-13"), CheckOutDate: mustDate("2024-06-16"), Status: model.BookingCancelled},
		{HotelID: hotel.ID, RoomID: 1, GuestName: "Deleted", CheckInDate: mustDate("2024-06-13"), CheckOutDate: mustDate("2024-06-16"), Status: model.BookingConfirmed, IsDeleted: true},
	}
	for i := range bookings {
		if err := db.CreateBooking(ctx, &bookings[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.ListActiveBookings(ctx, 1, mustDate("2024-06-14"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].GuestName != "Current" {
		t.Errorf("active = %+v", got)
	}

	all, err := db.ListBookings(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("listed %d bookings, want all 4", len(all))
	}
}

func TestPromotionsAreCopied(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)

	p := model.Promotion{HotelID: hotel.ID, Name: "Bar", IsActive: true, DaysOfWeek: []int64{1, 2}}
	if err := db.CreatePromotion(ctx, &p); err != nil {
		t.Fatal(err)
	}
	p.DaysOfWeek[0] = 6

	got, err := db.GetPromotion(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.DaysOfWeek[0] != 1 {
		t.Errorf("stored days changed through caller slice: %v", got.DaysOfWeek)
	}
}

func TestDeactivatePromotions(t *testing.T) {
	ctx := context.Background()
	db, hotel := newDB(t)

	promotions := []model.Promotion{
		{HotelID: hotel.ID, Name: "ended", IsActive: true},
		{HotelID: hotel.ID, Name: "kept", IsActive: true},
		{HotelID: hotel.ID, Name: "already off"},
		{HotelID: hotel.ID, Name: "deleted", IsActive: true, IsDeleted: true},
	}
	for i := range promotions {
		if err := db.CreatePromotion(ctx, &promotions[i]); err != nil {
			t.Fatal(err)
		}
	}

	n, err := db.DeactivatePromotions(ctx, []uint{promotions[0].ID, promotions[2].ID, promotions[3].ID, 999})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deactivated %d, want 1", n)
	}
	ended, _ := db.GetPromotion(ctx, promotions[0].ID)
	if ended.IsActive {
		t.Error("ended promotion still active")
	}
	kept, _ := db.GetPromotion(ctx, promotions[1].ID)
	if !kept.IsActive {
		t.Error("unlisted promotion was deactivated")
	}

	if n, err := db.DeactivatePromotions(ctx, nil); err != nil || n != 0 {
		t.Errorf("empty list: n=%d err=%v", n, err)
	}
}

func TestRoomEventsFanOut(t *testing.T) {
	ctx := context.Background()
	db, _ := newDB(t)

	first, cancelFirst, err := db.SubscribeRoomEvents(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, cancelSecond, err := db.SubscribeRoomEvents(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer cancelSecond()
	other, cancelOther, err := db.SubscribeRoomEvents(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer cancelOther()

	event := model.RoomEvent{HotelID: 1, RoomID: 4, From: model.RoomAvailable, To: model.RoomOccupied}
	if err := db.PublishRoomEvent(ctx, event); err != nil {
		t.Fatal(err)
	}

	for name, ch := range map[string]<-chan model.RoomEvent{"first": first, "second": second} {
		select {
		case got := <-ch:
			if got != event {
				t.Errorf("%s got %+v", name, got)
			}
		default:
			t.Errorf("%s received nothing", name)
		}
	}
	select {
	case got := <-other:
		t.Errorf("other hotel received %+v", got)
	default:
	}

	cancelFirst()
	cancelFirst()
	if _, open := <-first; open {
		t.Error("channel still open after cancel")
	}
	if err := db.PublishRoomEvent(ctx, event); err != nil {
		t.Fatal(err)
	}
}

func mustDate(s string) utils.CustomDate {
	d, err := utils.ParseCustomDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
