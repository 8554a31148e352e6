package model

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// Room.Status is written by staff and by the check-in/check-out flows. It can drift
// from the booking ledger and is never used on its own to decide occupancy.
type Room struct {
	DTO
	HotelID    uint       `gorm:"not null;index:idx_rooms_hotel_number" json:"hotelId"`
	RoomNumber string     `gorm:"not null;size:20;index:idx_rooms_hotel_number" json:"roomNumber"`
	Floor      string     `gorm:"size:10" json:"floor"`
	RoomType   string     `gorm:"size:50" json:"roomType"`
	Status     RoomStatus `gorm:"not null;size:20" json:"status"`
	IsDeleted  bool       `gorm:"not null;default:false" json:"-"`
}

type UpdateRoomStatusInput struct {
	Expected RoomStatus `json:"expected" validate:"required,oneof=available occupied cleaning maintenance"`
	Status   RoomStatus `json:"status" validate:"required,oneof=available occupied cleaning maintenance"`
}

type RoomEvent struct {
	HotelID    uint       `json:"hotelId"`
	RoomID     uint       `json:"roomId"`
	RoomNumber string     `json:"roomNumber"`
	From       RoomStatus `json:"from"`
	To         RoomStatus `json:"to"`
	Reason     string     `json:"reason"`
}

// RoomLookupQuery addresses a room the way guests do: by hotel and printed room number.
type RoomLookupQuery struct {
	HotelID    uint   `query:"hotel_id" validate:"required,gt=0"`
	RoomNumber string `query:"room_number" validate:"required,max=20"`
	GuestName  string `query:"guest_name" validate:"omitempty,max=120"`
}
