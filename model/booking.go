package model

import "hotel_manager/utils"

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

type Booking struct {
	DTO
	HotelID      uint             `gorm:"not null;index" json:"hotelId"`
	RoomID       uint             `gorm:"not null;index" json:"roomId"`
	GuestID      *uint            `json:"guestId,omitempty"`
	GuestName    string           `gorm:"not null" json:"guestName"`
	GuestEmail   string           `json:"guestEmail"`
	GuestPhone   string           `gorm:"size:30" json:"guestPhone"`
	CheckInDate  utils.CustomDate `gorm:"type:date;not null" json:"checkInDate"`
	CheckOutDate utils.CustomDate `gorm:"type:date;not null" json:"checkOutDate"`
	Status       BookingStatus    `gorm:"not null;size:20;index" json:"status"`
	IsDeleted    bool             `gorm:"not null;default:false" json:"-"`
}
