package store

import (
	"context"
	"errors"

	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/utils"

	"gorm.io/gorm"
)

// Store is the postgres-backed data layer.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ service.Backend = (*Store)(nil)

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// === hotels ===

func (s *Store) GetHotel(ctx context.Context, id uint) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&hotel).Error; err != nil {
		return nil, notFound(err, service.ErrHotelNotFound)
	}
	return &hotel, nil
}

func (s *Store) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	var hotels []model.Hotel
	err := s.db.WithContext(ctx).Where("is_deleted = ?", false).Order("id ASC").Find(&hotels).Error
	return hotels, err
}

func (s *Store) CreateHotel(ctx context.Context, hotel *model.Hotel) error {
	return s.db.WithContext(ctx).Create(hotel).Error
}

func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Hotel{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *Store) GetHotelTimezone(ctx context.Context, hotelID uint) (string, error) {
	var hotel model.Hotel
	err := s.db.WithContext(ctx).Select("id", "timezone").
		Where("id = ? AND is_deleted = ?", hotelID, false).First(&hotel).Error
	if err != nil {
		return "", notFound(err, service.ErrHotelNotFound)
	}
	return hotel.Timezone, nil
}

// === rooms ===

func (s *Store) GetRoom(ctx context.Context, hotelID uint, roomNumber string) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).
		Where("hotel_id = ? AND room_number = ? AND is_deleted = ?", hotelID, roomNumber, false).
		First(&room).Error
	if err != nil {
		return nil, notFound(err, service.ErrRoomNotFound)
	}
	return &room, nil
}

func (s *Store) GetRoomByID(ctx context.Context, id uint) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&room).Error; err != nil {
		return nil, notFound(err, service.ErrRoomNotFound)
	}
	return &room, nil
}

func (s *Store) ListRooms(ctx context.Context, hotelID uint) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("hotel_id = ? AND is_deleted = ?", hotelID, false).
		Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *Store) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.db.WithContext(ctx).Create(room).Error
}

func (s *Store) UpdateRoomStatus(ctx context.Context, id uint, expected, next model.RoomStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, expected, false).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// === bookings ===

func (s *Store) GetBooking(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, notFound(err, service.ErrBookingNotFound)
	}
	return &booking, nil
}

func (s *Store) ListBookings(ctx context.Context, roomID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).Where("room_id = ?", roomID).Order("id ASC").Find(&bookings).Error
	return bookings, err
}

func (s *Store) ListActiveBookings(ctx context.Context, roomID uint, asOf utils.CustomDate) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND is_deleted = ? AND status IN ? AND check_out_date >= ?",
			roomID, false, []model.BookingStatus{model.BookingConfirmed, model.BookingCheckedIn}, asOf).
		Order("id ASC").Find(&bookings).Error
	return bookings, err
}

func (s *Store) CreateBooking(ctx context.Context, booking *model.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id uint, expected, next model.BookingStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, expected, false).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// === orders ===

func (s *Store) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) ListPendingOrders(ctx context.Context, roomID uint, bookingID *uint) ([]model.Order, error) {
	var orders []model.Order
	query := s.db.WithContext(ctx).Where("room_id = ? AND status = ?", roomID, model.OrderPending)
	if bookingID != nil {
		query = query.Where("(booking_id = ? OR booking_id IS NULL)", *bookingID)
	} else {
		query = query.Where("booking_id IS NULL")
	}
	err := query.Order("id ASC").Find(&orders).Error
	return orders, err
}

// === promotions ===

func (s *Store) ListPromotions(ctx context.Context, hotelID uint, filter service.PromotionFilter) ([]model.Promotion, error) {
	var promotions []model.Promotion
	query := s.db.WithContext(ctx).Where("hotel_id = ? AND is_deleted = ?", hotelID, false)
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("id ASC").Find(&promotions).Error
	return promotions, err
}

func (s *Store) GetPromotion(ctx context.Context, id uint) (*model.Promotion, error) {
	var promotion model.Promotion
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&promotion).Error; err != nil {
		return nil, notFound(err, service.ErrPromotionNotFound)
	}
	return &promotion, nil
}

func (s *Store) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.db.WithContext(ctx).Create(promotion).Error
}

func (s *Store) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	res := s.db.WithContext(ctx).Model(&model.Promotion{}).
		Where("id = ? AND is_deleted = ?", promotion.ID, false).
		Select("*").Omit("id", "created_at").
		Updates(promotion)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrPromotionNotFound
	}
	return nil
}

func (s *Store) SoftDeletePromotion(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&model.Promotion{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrPromotionNotFound
	}
	return nil
}

func (s *Store) DeactivatePromotions(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&model.Promotion{}).
		Where("id IN ? AND is_deleted = ? AND is_active = ?", ids, false, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
