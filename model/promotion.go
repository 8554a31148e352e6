package model

import (
	"hotel_manager/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
	DiscountFreeItem    DiscountType = "free_item"
)

type Promotion struct {
	DTO
	HotelID     uint   `gorm:"not null;index" json:"hotelId"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null" json:"isActive"`
	IsDeleted   bool   `gorm:"not null;default:false" json:"-"`

	StartDate  *utils.CustomDate `gorm:"type:date" json:"startDate"`
	EndDate    *utils.CustomDate `gorm:"type:date" json:"endDate"`
	StartTime  *utils.ClockTime  `gorm:"size:5" json:"startTime"`
	EndTime    *utils.ClockTime  `gorm:"size:5" json:"endTime"`
	DaysOfWeek pq.Int64Array     `gorm:"type:integer[]" json:"daysOfWeek"` // 0=Sunday..6=Saturday

	DiscountType      DiscountType        `gorm:"not null;size:20" json:"discountType"`
	DiscountValue     decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"discountValue"`
	MinOrderAmount    decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"minOrderAmount"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"maxDiscountAmount"`

	AppliesToAllProducts  bool           `gorm:"not null;default:false" json:"appliesToAllProducts"`
	AppliesToServiceTypes pq.StringArray `gorm:"type:text[]" json:"appliesToServiceTypes"`

	ShowBanner     bool   `gorm:"not null;default:false" json:"showBanner"`
	ShowAlways     bool   `gorm:"not null;default:false" json:"showAlways"`
	SortOrder      int    `gorm:"not null;default:0" json:"sortOrder"`
	BannerImageURL string `json:"bannerImageUrl"`
}

type PromotionInput struct {
	Name                  string            `json:"name" validate:"required,max=120"`
	Description           string            `json:"description"`
	IsActive              *bool             `json:"isActive"`
	StartDate             *utils.CustomDate `json:"startDate"`
	EndDate               *utils.CustomDate `json:"endDate"`
	StartTime             *utils.ClockTime  `json:"startTime"`
	EndTime               *utils.ClockTime  `json:"endTime"`
	DaysOfWeek            []int64           `json:"daysOfWeek" validate:"omitempty,max=7,dive,min=0,max=6"`
	DiscountType          DiscountType      `json:"discountType" validate:"required,oneof=percentage fixed_amount free_item"`
	DiscountValue         decimal.Decimal   `json:"discountValue"`
	MinOrderAmount        decimal.Decimal   `json:"minOrderAmount"`
	MaxDiscountAmount     *decimal.Decimal  `json:"maxDiscountAmount"`
	AppliesToAllProducts  bool              `json:"appliesToAllProducts"`
	AppliesToServiceTypes []string          `json:"appliesToServiceTypes" validate:"omitempty,dive,required,max=50"`
	ShowBanner            bool              `json:"showBanner"`
	ShowAlways            bool              `json:"showAlways"`
	SortOrder             int               `json:"sortOrder"`
	BannerImageURL        string            `json:"bannerImageUrl" validate:"omitempty,url"`
}

type PromotionQuery struct {
	HotelID     uint   `query:"hotel_id" validate:"required,gt=0"`
	ServiceType string `query:"service_type" validate:"omitempty,max=50"`
}
