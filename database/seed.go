package database

import (
	"context"
	"time"

	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Seeder is satisfied by both the postgres and the in-memory stores.
type Seeder interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateHotel(ctx context.Context, hotel *model.Hotel) error
	CreateRoom(ctx context.Context, room *model.Room) error
	CreateBooking(ctx context.Context, booking *model.Booking) error
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
}

const demoSlug = "grand-riverside"

// SeedData creates a demo hotel with bookings around the given day. It does nothing if the hotel already exists.
func SeedData(ctx context.Context, s Seeder, now time.Time, l logrus.FieldLogger) error {
	exists, err := s.SlugExists(ctx, demoSlug)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hotel := model.Hotel{Name: "Grand Riverside", Slug: demoSlug, Timezone: "America/Chicago", Address: "100 River St, Chicago, IL", Phone: "+1 312 555 0100"}
	if err := s.CreateHotel(ctx, &hotel); err != nil {
		return err
	}

	loc, err := time.LoadLocation(hotel.Timezone)
	if err != nil {
		loc = time.UTC
	}
	today := utils.LocalToday(now, loc)
	day := func(offset int) utils.CustomDate {
		return utils.NewCustomDate(today.AddDate(0, 0, offset))
	}

	rooms := []model.Room{
		{HotelID: hotel.ID, RoomNumber: "101", Floor: "1", RoomType: "king", Status: model.RoomOccupied},
		{HotelID: hotel.ID, RoomNumber: "102", Floor: "1", RoomType: "queen", Status: model.RoomOccupied},
		{HotelID: hotel.ID, RoomNumber: "103", Floor: "1", RoomType: "queen", Status: model.RoomOccupied},
		{HotelID: hotel.ID, RoomNumber: "104", Floor: "1", RoomType: "double", Status: model.RoomAvailable},
		{HotelID: hotel.ID, RoomNumber: "201", Floor: "2", RoomType: "suite", Status: model.RoomCleaning},
		{HotelID: hotel.ID, RoomNumber: "202", Floor: "2", RoomType: "suite", Status: model.RoomMaintenance},
	}
	roomIDs := map[string]uint{}
	for i := range rooms {
		if err := s.CreateRoom(ctx, &rooms[i]); err != nil {
			return err
		}
		roomIDs[rooms[i].RoomNumber] = rooms[i].ID
	}

	// 103 is marked occupied with no live booking and 104 has one while marked available.
	bookings := []model.Booking{
		{HotelID: hotel.ID, RoomID: roomIDs["101"], GuestName: "John Doe", GuestEmail: "john.doe@example.com", CheckInDate: day(-1), CheckOutDate: day(2), Status: model.BookingCheckedIn},
		{HotelID: hotel.ID, RoomID: roomIDs["102"], GuestName: "Maria Garcia", GuestEmail: "maria@example.com", CheckInDate: day(0), CheckOutDate: day(3), Status: model.BookingConfirmed},
		{HotelID: hotel.ID, RoomID: roomIDs["103"], GuestName: "Wei Chen", CheckInDate: day(-4), CheckOutDate: day(-1), Status: model.BookingCheckedIn},
		{HotelID: hotel.ID, RoomID: roomIDs["104"], GuestName: "Amara Okafor", CheckInDate: day(0), CheckOutDate: day(1), Status: model.BookingConfirmed},
		{HotelID: hotel.ID, RoomID: roomIDs["201"], GuestName: "Lars Berg", CheckInDate: day(-3), CheckOutDate: day(0), Status: model.BookingCheckedOut},
	}
	for i := range bookings {
		if err := s.CreateBooking(ctx, &bookings[i]); err != nil {
			return err
		}
	}

	promotions := []model.Promotion{
		{
			HotelID: hotel.ID, Name: "Happy Hour", Description: "20% off drinks on weekdays",
			IsActive: true, StartTime: utils.Ptr(utils.NewClockTime(16, 0)), EndTime: utils.Ptr(utils.NewClockTime(18, 0)),
			DaysOfWeek:   pq.Int64Array{1, 2, 3, 4, 5},
			DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(20),
			MaxDiscountAmount:     decimal.NewNullDecimal(decimal.NewFromInt(25)),
			AppliesToServiceTypes: pq.StringArray{"bar"},
			ShowBanner:            true, SortOrder: 1,
		},
		{
			HotelID: hotel.ID, Name: "Late Night Bites", Description: "$5 off room service after 10pm",
			IsActive: true, StartTime: utils.Ptr(utils.NewClockTime(22, 0)), EndTime: utils.Ptr(utils.NewClockTime(2, 0)),
			DaysOfWeek:   pq.Int64Array{5, 6},
			DiscountType: model.DiscountFixedAmount, DiscountValue: decimal.NewFromInt(5),
			MinOrderAmount:        decimal.NewFromInt(20),
			AppliesToServiceTypes: pq.StringArray{"room_service"},
			ShowBanner:            true, SortOrder: 2,
		},
		{
			HotelID: hotel.ID, Name: "Welcome Dessert", Description: "Free dessert with any dinner order",
			IsActive: true, DiscountType: model.DiscountFreeItem, DiscountValue: decimal.Zero,
			MinOrderAmount:       decimal.NewFromInt(30),
			AppliesToAllProducts: true, ShowBanner: true, ShowAlways: true, SortOrder: 3,
		},
	}
	for i := range promotions {
		if err := s.CreatePromotion(ctx, &promotions[i]); err != nil {
			return err
		}
	}

	l.WithFields(logrus.Fields{"hotel_id": hotel.ID, "rooms": len(rooms), "bookings": len(bookings)}).Info("seeded demo hotel")
	return nil
}
