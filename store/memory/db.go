package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"hotel_manager/model"
	"hotel_manager/service"
	"hotel_manager/utils"
)

// DB keeps every table in process memory. It backs local runs without postgres and the tests.
type DB struct {
	mu         sync.RWMutex
	now        func() time.Time
	nextID     uint
	hotels     map[uint]*model.Hotel
	rooms      map[uint]*model.Room
	bookings   map[uint]*model.Booking
	orders     map[uint]*model.Order
	promotions map[uint]*model.Promotion

	subMu       sync.Mutex
	subscribers map[uint]map[chan model.RoomEvent]struct{}
}

type Config struct {
	// Now stamps CreatedAt/UpdatedAt on rows that do not carry one. Defaults to time.Now.
	Now func() time.Time
}

func New(conf Config) *DB {
	now := conf.Now
	if now == nil {
		now = time.Now
	}
	return &DB{
		now:         now,
		hotels:      make(map[uint]*model.Hotel),
		rooms:       make(map[uint]*model.Room),
		bookings:    make(map[uint]*model.Booking),
		orders:      make(map[uint]*model.Order),
		promotions:  make(map[uint]*model.Promotion),
		subscribers: make(map[uint]map[chan model.RoomEvent]struct{}),
	}
}

var _ service.Backend = (*DB)(nil)

func (db *DB) stamp(dto *model.DTO) {
	if dto.ID == 0 {
		db.nextID++
		dto.ID = db.nextID
	} else if dto.ID > db.nextID {
		db.nextID = dto.ID
	}
	now := db.now()
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = now
	}
	dto.UpdatedAt = now
}

// === hotels ===

func (db *DB) CreateHotel(_ context.Context, hotel *model.Hotel) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stamp(&hotel.DTO)
	h := *hotel
	db.hotels[h.ID] = &h
	return nil
}

func (db *DB) GetHotel(_ context.Context, id uint) (*model.Hotel, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	h, ok := db.hotels[id]
	if !ok || h.IsDeleted {
		return nil, service.ErrHotelNotFound
	}
	out := *h
	return &out, nil
}

func (db *DB) ListHotels(_ context.Context) ([]model.Hotel, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]model.Hotel, 0, len(db.hotels))
	for _, h := range db.hotels {
		if !h.IsDeleted {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) SlugExists(_ context.Context, slug string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, h := range db.hotels {
		if h.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (db *DB) GetHotelTimezone(_ context.Context, hotelID uint) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	h, ok := db.hotels[hotelID]
	if !ok || h.IsDeleted {
		return "", service.ErrHotelNotFound
	}
	return h.Timezone, nil
}

// === rooms ===

func (db *DB) CreateRoom(_ context.Context, room *model.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stamp(&room.DTO)
	r := *room
	db.rooms[r.ID] = &r
	return nil
}

func (db *DB) GetRoom(_ context.Context, hotelID uint, roomNumber string) (*model.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, r := range db.rooms {
		if r.HotelID == hotelID && r.RoomNumber == roomNumber && !r.IsDeleted {
			out := *r
			return &out, nil
		}
	}
	return nil, service.ErrRoomNotFound
}

func (db *DB) GetRoomByID(_ context.Context, id uint) (*model.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	r, ok := db.rooms[id]
	if !ok || r.IsDeleted {
		return nil, service.ErrRoomNotFound
	}
	out := *r
	return &out, nil
}

func (db *DB) ListRooms(_ context.Context, hotelID uint) ([]model.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []model.Room{}
	for _, r := range db.rooms {
		if r.HotelID == hotelID && !r.IsDeleted {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (db *DB) UpdateRoomStatus(_ context.Context, id uint, expected, next model.RoomStatus) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.rooms[id]
	if !ok || r.IsDeleted || r.Status != expected {
		return false, nil
	}
	r.Status = next
	r.UpdatedAt = db.now()
	return true, nil
}

// === bookings ===

func (db *DB) CreateBooking(_ context.Context, booking *model.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stamp(&booking.DTO)
	b := *booking
	db.bookings[b.ID] = &b
	return nil
}

func (db *DB) GetBooking(_ context.Context, id uint) (*model.Booking, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	b, ok := db.bookings[id]
	if !ok {
		return nil, service.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (db *DB) ListBookings(_ context.Context, roomID uint) ([]model.Booking, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []model.Booking{}
	for _, b := range db.bookings {
		if b.RoomID == roomID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) ListActiveBookings(ctx context.Context, roomID uint, asOf utils.CustomDate) ([]model.Booking, error) {
	all, err := db.ListBookings(ctx, roomID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for i := range all {
		if service.IsActiveBooking(&all[i], asOf) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (db *DB) UpdateBookingStatus(_ context.Context, id uint, expected, next model.BookingStatus) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	b, ok := db.bookings[id]
	if !ok || b.IsDeleted || b.Status != expected {
		return false, nil
	}
	b.Status = next
	b.UpdatedAt = db.now()
	return true, nil
}

// === orders ===

func (db *DB) CreateOrder(_ context.Context, order *model.Order) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stamp(&order.DTO)
	o := *order
	db.orders[o.ID] = &o
	return nil
}

func (db *DB) ListPendingOrders(_ context.Context, roomID uint, bookingID *uint) ([]model.Order, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []model.Order{}
	for _, o := range db.orders {
		if o.RoomID != roomID || o.Status != model.OrderPending {
			continue
		}
		if o.BookingID != nil && (bookingID == nil || *o.BookingID != *bookingID) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// === promotions ===

func clonePromotion(p *model.Promotion) model.Promotion {
	out := *p
	out.DaysOfWeek = append(out.DaysOfWeek[:0:0], p.DaysOfWeek...)
	out.AppliesToServiceTypes = append(out.AppliesToServiceTypes[:0:0], p.AppliesToServiceTypes...)
	return out
}

func (db *DB) ListPromotions(_ context.Context, hotelID uint, filter service.PromotionFilter) ([]model.Promotion, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []model.Promotion{}
	for _, p := range db.promotions {
		if p.HotelID != hotelID || p.IsDeleted {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, clonePromotion(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *DB) GetPromotion(_ context.Context, id uint) (*model.Promotion, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.promotions[id]
	if !ok || p.IsDeleted {
		return nil, service.ErrPromotionNotFound
	}
	out := clonePromotion(p)
	return &out, nil
}

func (db *DB) CreatePromotion(_ context.Context, promotion *model.Promotion) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stamp(&promotion.DTO)
	p := clonePromotion(promotion)
	db.promotions[p.ID] = &p
	return nil
}

func (db *DB) UpdatePromotion(_ context.Context, promotion *model.Promotion) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, ok := db.promotions[promotion.ID]
	if !ok || existing.IsDeleted {
		return service.ErrPromotionNotFound
	}
	promotion.CreatedAt = existing.CreatedAt
	promotion.UpdatedAt = db.now()
	p := clonePromotion(promotion)
	db.promotions[p.ID] = &p
	return nil
}

func (db *DB) SoftDeletePromotion(_ context.Context, id uint) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.promotions[id]
	if !ok || p.IsDeleted {
		return service.ErrPromotionNotFound
	}
	p.IsDeleted = true
	p.IsActive = false
	p.UpdatedAt = db.now()
	return nil
}

func (db *DB) DeactivatePromotions(_ context.Context, ids []uint) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var n int64
	for _, id := range ids {
		p, ok := db.promotions[id]
		if !ok || p.IsDeleted || !p.IsActive {
			continue
		}
		p.IsActive = false
		p.UpdatedAt = db.now()
		n++
	}
	return n, nil
}
