package service_test

import (
	"errors"
	"testing"

	"hotel_manager/model"
	"hotel_manager/service"
)

func TestValidateRoomForOrder(t *testing.T) {
	asOf := mustDate("2024-06-14")

	tests := []struct {
		name        string
		guestName   string
		withBooking bool
		roomStatus  model.RoomStatus
		wantValid   bool
		wantReason  service.Reason
		wantBooking bool
	}{
		{name: "matching name", guestName: "John Doe", withBooking: true, roomStatus: model.RoomOccupied, wantValid: true, wantBooking: true},
		{name: "case and whitespace insensitive", guestName: "  john   DOE ", withBooking: true, roomStatus: model.RoomOccupied, wantValid: true, wantBooking: true},
		{name: "no name supplied", guestName: "", withBooking: true, roomStatus: model.RoomOccupied, wantValid: true, wantBooking: true},
		{name: "name mismatch", guestName: "Jane Roe", withBooking: true, roomStatus: model.RoomOccupied, wantReason: service.ReasonGuestNameMismatch},
		{name: "no booking", guestName: "John Doe", roomStatus: model.RoomAvailable, wantReason: service.ReasonNoActiveBooking},
		// the ledger decides, not the stale flag
		{name: "occupied flag without booking", guestName: "John Doe", roomStatus: model.RoomOccupied, wantReason: service.ReasonNoActiveBooking},
		{name: "booking on room flagged available", guestName: "john doe", withBooking: true, roomStatus: model.RoomAvailable, wantValid: true, wantBooking: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			room := f.room(t, "101", tt.roomStatus)
			if tt.withBooking {
				f.booking(t, room, "John Doe", "2024-06-13", "2024-06-16", model.BookingCheckedIn)
			}

			got, err := f.svc.Eligibility.ValidateRoomForOrder(f.ctx, "101", f.hotel.ID, tt.guestName, asOf)
			if err != nil {
				t.Fatal(err)
			}
			if got.Valid != tt.wantValid || got.Reason != tt.wantReason {
				t.Errorf("got valid=%v reason=%q, want valid=%v reason=%q", got.Valid, got.Reason, tt.wantValid, tt.wantReason)
			}
			if (got.Booking != nil) != tt.wantBooking {
				t.Errorf("booking = %+v, want present=%v", got.Booking, tt.wantBooking)
			}
			if got.Room == nil || got.Room.ID != room.ID {
				t.Errorf("room = %+v", got.Room)
			}
		})
	}
}

func TestValidateRoomForOrderRoomNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Eligibility.ValidateRoomForOrder(f.ctx, "404", f.hotel.ID, "", mustDate("2024-06-14"))
	if !errors.Is(err, service.ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestGuestNamesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"John Doe", "john doe", true},
		{" John\tDoe ", "JOHN DOE", true},
		{"José Núñez", "JOSÉ NÚÑEZ", true},
		{"John Doe", "John Doe Jr", false},
		{"", "John", false},
	}
	for _, tt := range tests {
		if got := service.GuestNamesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("GuestNamesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
