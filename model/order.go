package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Order struct {
	DTO
	PublicCode     string          `gorm:"uniqueIndex;size:20" json:"publicCode"`
	HotelID        uint            `gorm:"not null;index" json:"hotelId"`
	RoomID         uint            `gorm:"not null;index" json:"roomId"`
	BookingID      *uint           `gorm:"index" json:"bookingId"` // null when placed before a booking was resolved
	GuestName      string          `json:"guestName"`
	ServiceType    string          `gorm:"size:50" json:"serviceType"`
	Status         OrderStatus     `gorm:"not null;size:20" json:"status"`
	PaymentStatus  PaymentStatus   `gorm:"not null;size:20" json:"paymentStatus"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discountAmount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PromotionID    *uint           `json:"promotionId,omitempty"`
	FreeItem       bool            `gorm:"not null;default:false" json:"freeItem"`
	Warning        string          `json:"warning,omitempty"`
	Items          datatypes.JSON  `gorm:"type:jsonb" json:"items"`
}

type OrderItem struct {
	Name      string          `json:"name" validate:"required,max=120"`
	Quantity  int             `json:"quantity" validate:"required,min=1,max=99"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type CreateOrderInput struct {
	HotelID     uint        `json:"hotelId" validate:"required"`
	RoomNumber  string      `json:"roomNumber" validate:"required,max=20"`
	GuestName   string      `json:"guestName" validate:"omitempty,max=120"`
	ServiceType string      `json:"serviceType" validate:"omitempty,max=50"`
	Items       []OrderItem `json:"items" validate:"required,min=1,dive"`
}
