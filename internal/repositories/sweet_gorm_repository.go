package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSweetRepository is a GORM implementation of SweetRepository.
type GORMSweetRepository struct {
	db *gorm.DB
}

// NewGORMSweetRepository creates a new instance of GORMSweetRepository.
func NewGORMSweetRepository(db *gorm.DB) *GORMSweetRepository {
	return &GORMSweetRepository{
		db: db,
	}
}

// GetAll retrieves all sweets from the database.
func (r *GORMSweetRepository) GetAll() ([]models.Sweet, error) {
	var sweets []models.Sweet
	if err := r.db.Find(&sweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sweets: %w", err)
	}
	return sweets, nil
}

// GetByID retrieves a single sweet by its ID.
func (r *GORMSweetRepository) GetByID(id string) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := r.db.First(&sweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to get sweet by ID %s: %w", id, err)
	}
	return &sweet, nil
}

// Create inserts a new sweet, assigning an ID and creation time.
func (r *GORMSweetRepository) Create(sweet *models.Sweet) error {
	if sweet.ID == "" {
		sweet.ID = uuid.New().String()
	}
	if sweet.CreatedAt.IsZero() {
		sweet.CreatedAt = time.Now()
	}
	if err := r.db.Create(sweet).Error; err != nil {
		return fmt.Errorf("failed to create sweet: %w", err)
	}
	return nil
}

// Update saves all fields of an existing sweet.
func (r *GORMSweetRepository) Update(sweet *models.Sweet) error {
	res := r.db.Save(sweet)
	if res.Error != nil {
		return fmt.Errorf("failed to update sweet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSweetNotFound
	}
	return nil
}

// Delete removes a sweet by its ID.
func (r *GORMSweetRepository) Delete(id string) error {
	res := r.db.Delete(&models.Sweet{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete sweet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSweetNotFound
	}
	return nil
}

// Search retrieves sweets matching the given filter.
func (r *GORMSweetRepository) Search(filter SweetFilter) ([]models.Sweet, error) {
	query := r.db.Model(&models.Sweet{})
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var sweets []models.Sweet
	if err := query.Find(&sweets).Error; err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	return sweets, nil
}

// AdjustStock atomically adds delta to a sweet's quantity. The guard on
// the UPDATE's WHERE clause makes the check-then-write a single statement,
// so two concurrent purchases cannot both pass the stock check.
func (r *GORMSweetRepository) AdjustStock(id string, delta int) (int, error) {
	var remaining int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Sweet{}).
			Where("id = ? AND quantity + ? >= 0", id, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return fmt.Errorf("failed to adjust stock for sweet %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Sweet{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to look up sweet %s: %w", id, err)
			}
			if count == 0 {
				return ErrSweetNotFound
			}
			return ErrInsufficientStock
		}

		var sweet models.Sweet
		if err := tx.First(&sweet, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to reload sweet %s: %w", id, err)
		}
		remaining = sweet.Quantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
