package model

type Hotel struct {
	DTO
	Name      string `gorm:"not null" json:"name"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Timezone  string `gorm:"size:64" json:"timezone"`
	Address   string `json:"address"`
	Phone     string `gorm:"size:30" json:"phone"`
	IsDeleted bool   `gorm:"not null;default:false" json:"-"`
}

type CreateHotelInput struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
	Address  string `json:"address" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}
