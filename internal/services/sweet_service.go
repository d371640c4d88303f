package services

import (
	"encoding/json"
	"log"

	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
)

// EventPublisher publishes inventory events to the message broker.
// A nil publisher disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// SweetPatch carries the optional fields of a partial update. Only
// non-nil fields are applied; the rest of the record is left unchanged.
type SweetPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// SweetService handles business logic for the sweet catalog.
type SweetService struct {
	repo      repositories.SweetRepository
	publisher EventPublisher
}

// NewSweetService creates a new SweetService. publisher may be nil when
// running without a message broker.
func NewSweetService(repo repositories.SweetRepository, publisher EventPublisher) *SweetService {
	return &SweetService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllSweets retrieves all sweets.
func (s *SweetService) GetAllSweets() ([]models.Sweet, error) {
	return s.repo.GetAll()
}

// GetSweetByID retrieves a single sweet by its ID.
func (s *SweetService) GetSweetByID(id string) (*models.Sweet, error) {
	return s.repo.GetByID(id)
}

// CreateSweet creates a new sweet.
func (s *SweetService) CreateSweet(sweet *models.Sweet) error {
	return s.repo.Create(sweet)
}

// SearchSweets retrieves sweets matching the filter.
func (s *SweetService) SearchSweets(filter repositories.SweetFilter) ([]models.Sweet, error) {
	return s.repo.Search(filter)
}

// UpdateSweet applies the fields present in the patch to an existing sweet
// and returns the updated record. The quantity field is applied as-is;
// only purchase and restock guard the stock level.
func (s *SweetService) UpdateSweet(id string, patch SweetPatch) (*models.Sweet, error) {
	sweet, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}

	if err := s.repo.Update(sweet); err != nil {
		return nil, err
	}
	return sweet, nil
}

// DeleteSweet removes a sweet by its ID.
func (s *SweetService) DeleteSweet(id string) error {
	return s.repo.Delete(id)
}

// Purchase decrements a sweet's stock by quantity and returns the
// remaining stock. The request is rejected without any mutation when
// quantity is non-positive or exceeds the current stock.
func (s *SweetService) Purchase(id string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	remaining, err := s.repo.AdjustStock(id, -quantity)
	if err != nil {
		return 0, err
	}

	s.publishEvent("sweet.purchased", map[string]interface{}{
		"sweet_id":           id,
		"quantity":           quantity,
		"remaining_quantity": remaining,
	})
	return remaining, nil
}

// Restock increments a sweet's stock by quantity and returns the new total.
func (s *SweetService) Restock(id string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	newQuantity, err := s.repo.AdjustStock(id, quantity)
	if err != nil {
		return 0, err
	}

	s.publishEvent("sweet.restocked", map[string]interface{}{
		"sweet_id":     id,
		"quantity":     quantity,
		"new_quantity": newQuantity,
	})
	return newQuantity, nil
}

// publishEvent sends an inventory event to the broker. Publish failures
// are logged and never fail the originating request.
func (s *SweetService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	} else {
		log.Printf("Published %s event: %s", routingKey, body)
	}
}
