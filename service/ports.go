package service

import (
	"context"

	"hotel_manager/model"
	"hotel_manager/utils"
)

// RoomDirectory looks up rooms. Deleted rooms are never returned; a miss is ErrRoomNotFound.
type RoomDirectory interface {
	GetRoom(ctx context.Context, hotelID uint, roomNumber string) (*model.Room, error)
	GetRoomByID(ctx context.Context, id uint) (*model.Room, error)
	ListRooms(ctx context.Context, hotelID uint) ([]model.Room, error)
	// UpdateRoomStatus writes next only while the stored status still equals expected.
	UpdateRoomStatus(ctx context.Context, id uint, expected, next model.RoomStatus) (bool, error)
}

type BookingLedger interface {
	GetBooking(ctx context.Context, id uint) (*model.Booking, error)
	ListBookings(ctx context.Context, roomID uint) ([]model.Booking, error)
	ListActiveBookings(ctx context.Context, roomID uint, asOf utils.CustomDate) ([]model.Booking, error)
	// UpdateBookingStatus writes next only while the stored status still equals expected.
	UpdateBookingStatus(ctx context.Context, id uint, expected, next model.BookingStatus) (bool, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	// ListPendingOrders returns pending orders of the room attached to bookingID or to no booking at all.
	ListPendingOrders(ctx context.Context, roomID uint, bookingID *uint) ([]model.Order, error)
}

type PromotionFilter struct {
	ActiveOnly bool
}

type PromotionStore interface {
	ListPromotions(ctx context.Context, hotelID uint, filter PromotionFilter) ([]model.Promotion, error)
	GetPromotion(ctx context.Context, id uint) (*model.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	UpdatePromotion(ctx context.Context, promotion *model.Promotion) error
	SoftDeletePromotion(ctx context.Context, id uint) error
	// DeactivatePromotions clears is_active on the listed promotions that are still active.
	DeactivatePromotions(ctx context.Context, ids []uint) (int64, error)
}

type HotelDirectory interface {
	GetHotel(ctx context.Context, id uint) (*model.Hotel, error)
	ListHotels(ctx context.Context) ([]model.Hotel, error)
	CreateHotel(ctx context.Context, hotel *model.Hotel) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	// GetHotelTimezone returns the stored IANA name, possibly empty.
	GetHotelTimezone(ctx context.Context, hotelID uint) (string, error)
}

// Backend is the whole data-access collaborator.
type Backend interface {
	RoomDirectory
	BookingLedger
	OrderStore
	PromotionStore
	HotelDirectory
}

type RoomEventPublisher interface {
	PublishRoomEvent(ctx context.Context, event model.RoomEvent) error
}

type RoomEventSubscriber interface {
	// SubscribeRoomEvents streams events of one hotel until cancel is called.
	SubscribeRoomEvents(ctx context.Context, hotelID uint) (events <-chan model.RoomEvent, cancel func(), err error)
}
