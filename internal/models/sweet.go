package models

import "time"

// Sweet represents a catalog item in the shop.
type Sweet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Category  string    `json:"category" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Price     float64   `json:"price" validate:"gte=0"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
}
