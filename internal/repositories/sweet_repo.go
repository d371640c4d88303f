package repositories

import "sweetshop/internal/models"

// SweetFilter holds the optional search criteria for sweets. All set
// filters are combined with AND; zero values impose no constraint.
type SweetFilter struct {
	Name     string   // case-insensitive substring match
	Category string   // exact match
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
}

// SweetRepository defines the interface for sweet data access.
type SweetRepository interface {
	GetAll() ([]models.Sweet, error)
	GetByID(id string) (*models.Sweet, error)
	Create(sweet *models.Sweet) error
	Update(sweet *models.Sweet) error
	Delete(id string) error
	Search(filter SweetFilter) ([]models.Sweet, error)
	// AdjustStock atomically adds delta to the sweet's quantity and
	// returns the resulting value. It fails with ErrInsufficientStock
	// if the adjustment would drive the quantity below zero, leaving
	// the record unchanged.
	AdjustStock(id string, delta int) (int, error)
}
