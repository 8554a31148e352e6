package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CheckoutInfo struct {
	Booking       *model.Booking  `json:"booking"`
	Room          *model.Room     `json:"room"`
	PendingOrders []model.Order   `json:"pendingOrders"`
	PendingTotal  decimal.Decimal `json:"pendingTotal"`
}

// Lifecycle runs the booking status changes that drive the declared room status.
type Lifecycle struct {
	rooms    RoomDirectory
	bookings BookingLedger
	orders   OrderStore
	status   *RoomStatusService
	clock    *HotelClock
	l        logrus.FieldLogger
}

func NewLifecycle(
	rooms RoomDirectory,
	bookings BookingLedger,
	orders OrderStore,
	status *RoomStatusService,
	clock *HotelClock,
	l logrus.FieldLogger,
) *Lifecycle {
	return &Lifecycle{
		rooms:    rooms,
		bookings: bookings,
		orders:   orders,
		status:   status,
		clock:    clock,
		l:        l,
	}
}

func (s *Lifecycle) getBooking(ctx context.Context, id uint) (*model.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	if booking.IsDeleted {
		return nil, fmt.Errorf("get booking %d: %w", id, ErrBookingNotFound)
	}
	return booking, nil
}

// Booking returns a live booking, for callers that must check ownership before a lifecycle change.
func (s *Lifecycle) Booking(ctx context.Context, id uint) (*model.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Lifecycle) moveBooking(ctx context.Context, booking *model.Booking, from, to model.BookingStatus) error {
	if booking.Status != from {
		return fmt.Errorf("%w: booking %d is %s, expected %s", ErrInvalidTransition, booking.ID, booking.Status, from)
	}

	ok, err := s.bookings.UpdateBookingStatus(ctx, booking.ID, from, to)
	if err != nil {
		return fmt.Errorf("update status of booking %d: %w", booking.ID, err)
	}
	if !ok {
		return fmt.Errorf("booking %d is no longer %s: %w", booking.ID, from, ErrConcurrentUpdate)
	}
	booking.Status = to
	return nil
}

// moveRoom follows the booking change on the room. Failures are logged and left to the
// consistency diagnostics; the booking change stands.
func (s *Lifecycle) moveRoom(ctx context.Context, roomID uint, target model.RoomStatus, reason string) {
	fields := logrus.Fields{"room_id": roomID, "target": target, "reason": reason}

	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		s.l.WithFields(fields).WithError(err).Warn("Could not load room after booking change")
		return
	}
	if room.Status == target {
		return
	}
	if !CanTransition(room.Status, target) {
		fields["declared"] = room.Status
		s.l.WithFields(fields).Warn("Room status does not allow the booking change, leaving it for reconciliation")
		return
	}

	if _, err := s.status.Transition(ctx, roomID, room.Status, target, reason); err != nil {
		s.l.WithFields(fields).WithError(err).Warn("Room status update lost after booking change")
	}
}

func (s *Lifecycle) CheckIn(ctx context.Context, bookingID uint) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.moveBooking(ctx, booking, model.BookingConfirmed, model.BookingCheckedIn); err != nil {
		return nil, err
	}

	s.moveRoom(ctx, booking.RoomID, model.RoomOccupied, "check_in")
	return booking, nil
}

// CheckOut completes a stay. Of two concurrent checkouts of the same booking only one succeeds.
func (s *Lifecycle) CheckOut(ctx context.Context, bookingID uint) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.moveBooking(ctx, booking, model.BookingCheckedIn, model.BookingCheckedOut); err != nil {
		return nil, err
	}

	s.moveRoom(ctx, booking.RoomID, model.RoomCleaning, "check_out")
	return booking, nil
}

// CheckoutInfo lists what the guest still owes. Orders without a booking id count when they
// were placed on the same room on or after the check-in day.
func (s *Lifecycle) CheckoutInfo(ctx context.Context, bookingID uint) (CheckoutInfo, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return CheckoutInfo{}, err
	}

	room, err := s.rooms.GetRoomByID(ctx, booking.RoomID)
	if err != nil && !errors.Is(err, ErrRoomNotFound) {
		return CheckoutInfo{}, fmt.Errorf("get room %d: %w", booking.RoomID, err)
	}

	loc, err := s.clock.Location(ctx, booking.HotelID)
	if err != nil {
		return CheckoutInfo{}, err
	}

	orders, err := s.orders.ListPendingOrders(ctx, booking.RoomID, &booking.ID)
	if err != nil {
		return CheckoutInfo{}, fmt.Errorf("list pending orders of room %d: %w", booking.RoomID, err)
	}

	info := CheckoutInfo{
		Booking:       booking,
		Room:          room,
		PendingOrders: []model.Order{},
		PendingTotal:  decimal.Zero,
	}
	for _, o := range orders {
		if o.BookingID == nil && placedBefore(o.CreatedAt, booking.CheckInDate, loc) {
			continue
		}
		info.PendingOrders = append(info.PendingOrders, o)
		info.PendingTotal = info.PendingTotal.Add(o.TotalAmount)
	}
	return info, nil
}

func placedBefore(createdAt time.Time, day utils.CustomDate, loc *time.Location) bool {
	return utils.LocalToday(createdAt, loc).Before(day)
}
