package service_test

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

// Friday 2024-06-14 15:00 in Chicago.
var fridayAfternoon = time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	db    *memory.DB
	svc   *service.Services
	hotel model.Hotel
	logs  *test.Hook
}

func newFixture(t *testing.T, configure ...func(*service.Options)) *fixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	db := memory.New(memory.Config{Now: func() time.Time { return fridayAfternoon }})
	f := &fixture{ctx: context.Background(), db: db, logs: hook}

	f.hotel = model.Hotel{Name: "Lakeside", Slug: "lakeside", Timezone: "America/Chicago"}
	if err := db.CreateHotel(f.ctx, &f.hotel); err != nil {
		t.Fatal(err)
	}

	opts := service.Options{Logger: logger, Events: db}
	for _, c := range configure {
		c(&opts)
	}
	svc, err := service.New(db, opts)
	if err != nil {
		t.Fatal(err)
	}
	f.svc = svc
	return f
}

func (f *fixture) room(t *testing.T, number string, status model.RoomStatus) model.Room {
	t.Helper()
	r := model.Room{HotelID: f.hotel.ID, RoomNumber: number, Status: status}
	if err := f.db.CreateRoom(f.ctx, &r); err != nil {
		t.Fatal(err)
	}
	return r
}

type bookingOpt func(*model.Booking)

func createdAt(at time.Time) bookingOpt {
	return func(b *model.Booking) { b.CreatedAt = at }
}

func deleted() bookingOpt {
	return func(b *model.Booking) { b.IsDeleted = true }
}

func (f *fixture) booking(
	t *testing.T,
	room model.Room,
	guest, checkIn, checkOut string,
	status model.BookingStatus,
	opts ...bookingOpt,
) model.Booking {
	t.Helper()
	b := model.Booking{
		HotelID:      room.HotelID,
		RoomID:       room.ID,
		GuestName:    guest,
		CheckInDate:  mustDate(checkIn),
		CheckOutDate: mustDate(checkOut),
		Status:       status,
	}
	for _, o := range opts {
		o(&b)
	}
	if err := f.db.CreateBooking(f.ctx, &b); err != nil {
		t.Fatal(err)
	}
	return b
}

func (f *fixture) promotion(t *testing.T, p model.Promotion) model.Promotion {
	t.Helper()
	p.HotelID = f.hotel.ID
	if err := f.db.CreatePromotion(f.ctx, &p); err != nil {
		t.Fatal(err)
	}
	return p
}

func (f *fixture) warnings() []*logrus.Entry {
	var out []*logrus.Entry
	for _, e := range f.logs.AllEntries() {
		if e.Level == logrus.WarnLevel {
			out = append(out, e)
		}
	}
	return out
}

func mustDate(s string) utils.CustomDate {
	d, err := utils.ParseCustomDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustClock(s string) utils.ClockTime {
	c, err := utils.ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}
