package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/sirupsen/logrus"
)

const (
	IssueOccupiedWithoutBooking = "occupied_without_active_booking"
	IssueBookingOnUnoccupied    = "active_booking_on_unoccupied_room"
	IssueMultipleActive         = ConflictMultipleActiveBookings
)

// IsActiveBooking reports whether b holds its room on asOf: not deleted, confirmed or
// checked in, and checking out today or later.
func IsActiveBooking(b *model.Booking, asOf utils.CustomDate) bool {
	if b == nil || b.IsDeleted {
		return false
	}
	if b.Status != model.BookingConfirmed && b.Status != model.BookingCheckedIn {
		return false
	}
	return !b.CheckOutDate.Before(asOf)
}

// Resolution is the outcome of looking for a room's active booking.
type Resolution struct {
	Booking    *model.Booking     `json:"booking"`
	Candidates []model.Booking    `json:"candidates"`
	Conflict   *IntegrityConflict `json:"conflict,omitempty"`
}

type RoomDiagnosis struct {
	Room           *model.Room        `json:"room"`
	DeclaredStatus model.RoomStatus   `json:"declaredStatus"`
	ActiveBooking  *model.Booking     `json:"activeBooking"`
	AllBookings    []model.Booking    `json:"allBookings"`
	Inconsistent   bool               `json:"inconsistent"`
	Issues         []string           `json:"issues"`
	Conflict       *IntegrityConflict `json:"conflict,omitempty"`
	AsOf           utils.CustomDate   `json:"asOf"`
}

type Reconciler struct {
	rooms    RoomDirectory
	bookings BookingLedger
	l        logrus.FieldLogger
}

func NewReconciler(rooms RoomDirectory, bookings BookingLedger, l logrus.FieldLogger) *Reconciler {
	return &Reconciler{
		rooms:    rooms,
		bookings: bookings,
		l:        l,
	}
}

// sortNewestFirst orders by creation time, then id, both descending.
func sortNewestFirst(bookings []model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func pickActive(roomID uint, bookings []model.Booking, asOf utils.CustomDate) Resolution {
	candidates := make([]model.Booking, 0, len(bookings))
	for i := range bookings {
		if bookings[i].RoomID == roomID && IsActiveBooking(&bookings[i], asOf) {
			candidates = append(candidates, bookings[i])
		}
	}
	if len(candidates) == 0 {
		return Resolution{Candidates: candidates}
	}

	sortNewestFirst(candidates)
	chosen := candidates[0]
	res := Resolution{Booking: &chosen, Candidates: candidates}

	if len(candidates) > 1 {
		ids := make([]uint, 0, len(candidates))
		for _, c := range candidates {
			ids = append(ids, c.ID)
		}
		res.Conflict = &IntegrityConflict{
			Kind:         ConflictMultipleActiveBookings,
			RoomID:       roomID,
			CandidateIDs: ids,
			ChosenID:     chosen.ID,
		}
	}
	return res
}

func (r *Reconciler) reportConflict(conflict *IntegrityConflict, asOf utils.CustomDate) {
	if conflict == nil {
		return
	}
	r.l.WithFields(logrus.Fields{
		"room_id":       conflict.RoomID,
		"candidate_ids": conflict.CandidateIDs,
		"chosen_id":     conflict.ChosenID,
		"as_of":         asOf.String(),
	}).Warn("Multiple active bookings for one room, using the most recently created")
}

// ResolveActiveBooking returns the booking that occupies roomID on asOf, if any. When several
// qualify the newest one is chosen and the conflict is attached to the result.
func (r *Reconciler) ResolveActiveBooking(ctx context.Context, roomID uint, asOf utils.CustomDate) (Resolution, error) {
	bookings, err := r.bookings.ListActiveBookings(ctx, roomID, asOf)
	if err != nil {
		return Resolution{}, fmt.Errorf("list active bookings of room %d: %w", roomID, err)
	}

	res := pickActive(roomID, bookings, asOf)
	r.reportConflict(res.Conflict, asOf)
	return res, nil
}

func (r *Reconciler) ResolveActiveBookingByRoomNumber(
	ctx context.Context,
	hotelID uint,
	roomNumber string,
	asOf utils.CustomDate,
) (*model.Room, Resolution, error) {
	room, err := r.findRoom(ctx, hotelID, roomNumber)
	if err != nil {
		return nil, Resolution{}, err
	}

	res, err := r.ResolveActiveBooking(ctx, room.ID, asOf)
	if err != nil {
		return nil, Resolution{}, err
	}
	return room, res, nil
}

func (r *Reconciler) findRoom(ctx context.Context, hotelID uint, roomNumber string) (*model.Room, error) {
	inputErr := NewInputError()
	if hotelID == 0 {
		inputErr.Add("hotel_id", "provide hotel_id")
	}
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		inputErr.Add("room_number", "provide room_number")
	}
	if err := inputErr.Err(); err != nil {
		return nil, err
	}

	room, err := r.rooms.GetRoom(ctx, hotelID, roomNumber)
	if err != nil {
		return nil, fmt.Errorf("get room %q of hotel %d: %w", roomNumber, hotelID, err)
	}
	return room, nil
}

// DiagnoseRoomState compares the declared room status with the booking ledger. It never writes.
func (r *Reconciler) DiagnoseRoomState(ctx context.Context, roomID uint, asOf utils.CustomDate) (RoomDiagnosis, error) {
	room, err := r.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		return RoomDiagnosis{}, fmt.Errorf("get room %d: %w", roomID, err)
	}
	return r.diagnose(ctx, room, asOf)
}

func (r *Reconciler) DiagnoseRoomByNumber(
	ctx context.Context,
	hotelID uint,
	roomNumber string,
	asOf utils.CustomDate,
) (RoomDiagnosis, error) {
	room, err := r.findRoom(ctx, hotelID, roomNumber)
	if err != nil {
		return RoomDiagnosis{}, err
	}
	return r.diagnose(ctx, room, asOf)
}

func (r *Reconciler) diagnose(ctx context.Context, room *model.Room, asOf utils.CustomDate) (RoomDiagnosis, error) {
	all, err := r.bookings.ListBookings(ctx, room.ID)
	if err != nil {
		return RoomDiagnosis{}, fmt.Errorf("list bookings of room %d: %w", room.ID, err)
	}

	visible := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if !b.IsDeleted {
			visible = append(visible, b)
		}
	}
	sortNewestFirst(visible)

	res := pickActive(room.ID, visible, asOf)
	r.reportConflict(res.Conflict, asOf)

	diag := RoomDiagnosis{
		Room:           room,
		DeclaredStatus: room.Status,
		ActiveBooking:  res.Booking,
		AllBookings:    visible,
		Issues:         []string{},
		Conflict:       res.Conflict,
		AsOf:           asOf,
	}

	switch {
	case room.Status == model.RoomOccupied && res.Booking == nil:
		diag.Issues = append(diag.Issues, IssueOccupiedWithoutBooking)
	case room.Status != model.RoomOccupied && res.Booking != nil:
		diag.Issues = append(diag.Issues, IssueBookingOnUnoccupied)
	}
	if res.Conflict != nil {
		diag.Issues = append(diag.Issues, IssueMultipleActive)
	}
	diag.Inconsistent = len(diag.Issues) > 0

	return diag, nil
}

// SweepHotel diagnoses every room of a hotel and returns the inconsistent ones.
func (r *Reconciler) SweepHotel(ctx context.Context, hotelID uint, asOf utils.CustomDate) ([]RoomDiagnosis, error) {
	rooms, err := r.rooms.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms of hotel %d: %w", hotelID, err)
	}

	var inconsistent []RoomDiagnosis
	for i := range rooms {
		if err := ctx.Err(); err != nil {
			return inconsistent, err
		}
		diag, err := r.diagnose(ctx, &rooms[i], asOf)
		if err != nil {
			return inconsistent, err
		}
		if diag.Inconsistent {
			inconsistent = append(inconsistent, diag)
		}
	}
	return inconsistent, nil
}
