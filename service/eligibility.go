package service

import (
	"context"
	"strings"

	"hotel_manager/model"
	"hotel_manager/utils"
)

type Reason string

const (
	ReasonNoActiveBooking   Reason = "NoActiveBooking"
	ReasonGuestNameMismatch Reason = "GuestNameMismatch"
	ReasonRoomNotFound      Reason = "RoomNotFound"
)

// RoomValidation is the answer to "may an order be placed against this room".
// A guest-name mismatch is reported here, the caller decides whether to block on it.
type RoomValidation struct {
	Valid    bool               `json:"valid"`
	Reason   Reason             `json:"reason,omitempty"`
	Room     *model.Room        `json:"room"`
	Booking  *model.Booking     `json:"booking"`
	Conflict *IntegrityConflict `json:"-"`
}

type EligibilityValidator struct {
	reconciler *Reconciler
}

func NewEligibilityValidator(reconciler *Reconciler) *EligibilityValidator {
	return &EligibilityValidator{reconciler: reconciler}
}

// ValidateRoomForOrder reads the ledger only. A missing room is ErrRoomNotFound.
func (v *EligibilityValidator) ValidateRoomForOrder(
	ctx context.Context,
	roomNumber string,
	hotelID uint,
	guestName string,
	asOf utils.CustomDate,
) (RoomValidation, error) {
	room, res, err := v.reconciler.ResolveActiveBookingByRoomNumber(ctx, hotelID, roomNumber, asOf)
	if err != nil {
		return RoomValidation{}, err
	}

	result := RoomValidation{Room: room, Conflict: res.Conflict}
	if res.Booking == nil {
		result.Reason = ReasonNoActiveBooking
		return result, nil
	}

	if strings.TrimSpace(guestName) != "" && !GuestNamesMatch(guestName, res.Booking.GuestName) {
		// the booking holds another guest's contact details, so it is not echoed back
		result.Reason = ReasonGuestNameMismatch
		return result, nil
	}

	result.Valid = true
	result.Booking = res.Booking
	return result, nil
}

// GuestNamesMatch compares names ignoring case, surrounding and repeated whitespace.
func GuestNamesMatch(a, b string) bool {
	return strings.EqualFold(normalizeName(a), normalizeName(b))
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
