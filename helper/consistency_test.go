package helper

import (
	"context"
	"testing"
	"time"

	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/store/memory"
	"hotel_manager/utils"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestConsistencySweep(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 6, 14, 18, 0, 0, 0, time.UTC)
	db := memory.New(memory.Config{Now: func() time.Time { return at }})
	logger, hook := test.NewNullLogger()

	hotel := model.Hotel{Name: "Lakeside", Slug: "lakeside", Timezone: "UTC"}
	if err := db.CreateHotel(ctx, &hotel); err != nil {
		t.Fatal(err)
	}
	rooms := []model.Room{
		{HotelID: hotel.ID, RoomNumber: "101", Status: model.RoomOccupied},
		{HotelID: hotel.ID, RoomNumber: "102", Status: model.RoomAvailable},
		{HotelID: hotel.ID, RoomNumber: "103", Status: model.RoomAvailable},
	}
	for i := range rooms {
		if err := db.CreateRoom(ctx, &rooms[i]); err != nil {
			t.Fatal(err)
		}
	}
	// 101 claims a guest who left, 102 hosts one it does not know about
	for _, b := range []model.Booking{
		{HotelID: hotel.ID, RoomID: rooms[0].ID, GuestName: "Gone", CheckInDate: mustDate("2024-06-10"), CheckOutDate: mustDate("2024-06-12"), Status: model.BookingCheckedIn},
		{HotelID: hotel.ID, RoomID: rooms[1].ID, GuestName: "Here", CheckInDate: mustDate("2024-06-13"), CheckOutDate: mustDate("2024-06-15"), Status: model.BookingCheckedIn},
	} {
		b := b
		if err := db.CreateBooking(ctx, &b); err != nil {
			t.Fatal(err)
		}
	}

	svc, err := service.New(db, service.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	sweeper := NewConsistencySweeper(svc, logger)
	sweeper.now = func() time.Time { return at }

	found, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if found != 2 {
		t.Errorf("found %d inconsistent rooms, want 2", found)
	}

	warned := map[string]bool{}
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "room status disagrees with bookings" {
			warned[e.Data["room_number"].(string)] = true
		}
	}
	if !warned["101"] || !warned["102"] || warned["103"] {
		t.Errorf("warned rooms = %v", warned)
	}
}

func mustDate(s string) utils.CustomDate {
	d, err := utils.ParseCustomDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
