package repositories

import (
	"strings"
	"sync"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
)

// MockSweetRepository is an in-memory implementation of SweetRepository.
type MockSweetRepository struct {
	sweets map[string]models.Sweet
	mu     sync.RWMutex
}

// NewMockSweetRepository creates a new instance of MockSweetRepository.
func NewMockSweetRepository() *MockSweetRepository {
	return &MockSweetRepository{
		sweets: make(map[string]models.Sweet),
	}
}

// GetAll returns all sweets.
func (r *MockSweetRepository) GetAll() ([]models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sweetList := make([]models.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		sweetList = append(sweetList, s)
	}
	return sweetList, nil
}

// GetByID returns a sweet by its ID.
func (r *MockSweetRepository) GetByID(id string) (*models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sweet, ok := r.sweets[id]
	if !ok {
		return nil, ErrSweetNotFound
	}
	return &sweet, nil
}

// Create adds a new sweet.
func (r *MockSweetRepository) Create(sweet *models.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sweet.ID == "" {
		sweet.ID = uuid.New().String()
	}
	if sweet.CreatedAt.IsZero() {
		sweet.CreatedAt = time.Now()
	}
	r.sweets[sweet.ID] = *sweet
	return nil
}

// Update modifies an existing sweet.
func (r *MockSweetRepository) Update(sweet *models.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sweets[sweet.ID]; !ok {
		return ErrSweetNotFound
	}
	r.sweets[sweet.ID] = *sweet
	return nil
}

// Delete removes a sweet by its ID.
func (r *MockSweetRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sweets[id]; !ok {
		return ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

// Search returns sweets matching the filter.
func (r *MockSweetRepository) Search(filter SweetFilter) ([]models.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Sweet, 0)
	for _, s := range r.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		matched = append(matched, s)
	}
	return matched, nil
}

// AdjustStock atomically adds delta to a sweet's quantity under the lock.
func (r *MockSweetRepository) AdjustStock(id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sweet, ok := r.sweets[id]
	if !ok {
		return 0, ErrSweetNotFound
	}
	if sweet.Quantity+delta < 0 {
		return 0, ErrInsufficientStock
	}
	sweet.Quantity += delta
	r.sweets[id] = sweet
	return sweet.Quantity, nil
}
