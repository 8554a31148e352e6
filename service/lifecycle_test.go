package service_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"hotel_manager/model"
	"hotel_manager/service"

	"github.com/shopspring/decimal"
)

func TestCheckInMovesRoomToOccupied(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomAvailable)
	b := f.booking(t, room, "Ada", "2024-06-14", "2024-06-16", model.BookingConfirmed)

	got, err := f.svc.Lifecycle.CheckIn(f.ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.BookingCheckedIn {
		t.Errorf("booking status = %s", got.Status)
	}
	r, _ := f.db.GetRoomByID(f.ctx, room.ID)
	if r.Status != model.RoomOccupied {
		t.Errorf("room status = %s, want occupied", r.Status)
	}

	if _, err := f.svc.Lifecycle.CheckIn(f.ctx, b.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("second check-in: err = %v", err)
	}
}

func TestCheckInLeavesIllegalRoomChangeToDiagnostics(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomCleaning)
	b := f.booking(t, room, "Ada", "2024-06-14", "2024-06-16", model.BookingConfirmed)

	if _, err := f.svc.Lifecycle.CheckIn(f.ctx, b.ID); err != nil {
		t.Fatal(err)
	}
	r, _ := f.db.GetRoomByID(f.ctx, room.ID)
	if r.Status != model.RoomCleaning {
		t.Errorf("room status = %s, want cleaning untouched", r.Status)
	}
	if len(f.warnings()) == 0 {
		t.Error("expected a warning about the skipped room change")
	}
}

func TestConcurrentCheckOutHasOneWinner(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomOccupied)
	b := f.booking(t, room, "Ada", "2024-06-10", "2024-06-14", model.BookingCheckedIn)

	const callers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Lifecycle.CheckOut(f.ctx, b.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("%d checkouts succeeded, want exactly 1", wins)
	}
	for _, err := range errs {
		if !errors.Is(err, service.ErrConcurrentUpdate) && !errors.Is(err, service.ErrInvalidTransition) {
			t.Errorf("loser error = %v", err)
		}
	}

	r, _ := f.db.GetRoomByID(f.ctx, room.ID)
	if r.Status != model.RoomCleaning {
		t.Errorf("room status = %s, want cleaning", r.Status)
	}
	stored, _ := f.db.GetBooking(f.ctx, b.ID)
	if stored.Status != model.BookingCheckedOut {
		t.Errorf("booking status = %s", stored.Status)
	}
}

func TestCheckoutInfo(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", model.RoomOccupied)
	b := f.booking(t, room, "Ada", "2024-06-12", "2024-06-16", model.BookingCheckedIn)
	other := f.booking(t, room, "Previous", "2024-06-01", "2024-06-05", model.BookingCheckedOut)

	chicago, _ := time.LoadLocation("America/Chicago")
	order := func(bookingID *uint, total int64, status model.OrderStatus, placed time.Time) {
		o := model.Order{
			HotelID:     f.hotel.ID,
			RoomID:      room.ID,
			BookingID:   bookingID,
			Status:      status,
			TotalAmount: decimal.NewFromInt(total),
		}
		o.CreatedAt = placed
		if err := f.db.CreateOrder(f.ctx, &o); err != nil {
			t.Fatal(err)
		}
	}

	order(&b.ID, 20, model.OrderPending, time.Date(2024, 6, 13, 9, 0, 0, 0, chicago))
	order(&b.ID, 7, model.OrderDelivered, time.Date(2024, 6, 13, 10, 0, 0, 0, chicago))
	order(nil, 5, model.OrderPending, time.Date(2024, 6, 12, 0, 30, 0, 0, chicago))
	// placed the evening before check-in, belongs to somebody else
	order(nil, 11, model.OrderPending, time.Date(2024, 6, 11, 23, 30, 0, 0, chicago))
	order(&other.ID, 13, model.OrderPending, time.Date(2024, 6, 3, 9, 0, 0, 0, chicago))

	info, err := f.svc.Lifecycle.CheckoutInfo(f.ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.PendingOrders) != 2 {
		t.Fatalf("pending orders = %d, want 2", len(info.PendingOrders))
	}
	if !info.PendingTotal.Equal(decimal.NewFromInt(25)) {
		t.Errorf("pending total = %s, want 25", info.PendingTotal)
	}
	if info.Room == nil || info.Room.ID != room.ID {
		t.Errorf("room = %+v", info.Room)
	}

	if _, err := f.svc.Lifecycle.CheckoutInfo(f.ctx, 9999); !errors.Is(err, service.ErrBookingNotFound) {
		t.Errorf("missing booking: err = %v", err)
	}
}
