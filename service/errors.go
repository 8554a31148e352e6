package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrRoomNotFound      = fmt.Errorf("room %w", ErrNotFound)
	ErrBookingNotFound   = fmt.Errorf("booking %w", ErrNotFound)
	ErrPromotionNotFound = fmt.Errorf("promotion %w", ErrNotFound)
	ErrHotelNotFound     = fmt.Errorf("hotel %w", ErrNotFound)

	ErrInvalidInput      = errors.New("invalid input")
	ErrConcurrentUpdate  = errors.New("record was updated concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoActiveBooking   = errors.New("room has no active booking")
	ErrGuestNameMismatch = errors.New("guest name does not match the active booking")
)

// InputError collects per-field validation messages. It matches ErrInvalidInput with errors.Is.
type InputError struct {
	fields map[string]string
}

func NewInputError() *InputError {
	return &InputError{fields: make(map[string]string)}
}

func (e *InputError) Add(field, message string) {
	if _, exists := e.fields[field]; exists {
		return
	}
	e.fields[field] = message
}

func (e *InputError) Fields() map[string]string {
	return e.fields
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Err returns nil when no field was reported.
func (e *InputError) Err() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

func AsInputError(err error) *InputError {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr
	}
	return nil
}

const ConflictMultipleActiveBookings = "multiple_active_bookings"

// IntegrityConflict describes stored data that breaks the one-active-booking-per-room rule.
// It is reported alongside a usable result, never instead of one.
type IntegrityConflict struct {
	Kind         string `json:"kind"`
	RoomID       uint   `json:"roomId"`
	CandidateIDs []uint `json:"candidateIds"`
	ChosenID     uint   `json:"chosenId"`
}

func (e *IntegrityConflict) Error() string {
	return fmt.Sprintf("data integrity conflict (%s) on room %d: candidates %v, chose %d",
		e.Kind, e.RoomID, e.CandidateIDs, e.ChosenID)
}
