package constants

const (
	DATA_INPUT_IS_NOT_NUMBER = "Input must be a number"
)

const (
	ROOM_NOT_FOUND        = "Room not found"
	BOOKING_NOT_FOUND     = "Booking not found"
	PROMOTION_NOT_FOUND   = "Promotion not found"
	HOTEL_NOT_FOUND       = "Hotel not found"
	INVALID_INPUT         = "Invalid input"
	CONCURRENT_UPDATE     = "The record was changed by another request, reload and try again"
	INVALID_TRANSITION    = "Status transition is not allowed"
	NO_ACTIVE_BOOKING     = "No active booking for this room"
	GUEST_NAME_MISMATCH   = "Guest name does not match the booking"
	INTERNAL_SERVER_ERROR = "Internal server error"
	NOT_STAFF             = "Staff access required"
	FORBIDDEN_HOTEL       = "You do not have access to this hotel"
)

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_MANAGER = "MANAGER"
	ROLE_STAFF   = "STAFF"
)
