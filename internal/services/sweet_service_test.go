package services_test

import (
	"encoding/json"
	"testing"

	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSweetRepository is a mock implementation of repositories.SweetRepository
type MockSweetRepository struct {
	mock.Mock
}

func (m *MockSweetRepository) GetAll() ([]models.Sweet, error) {
	args := m.Called()
	return args.Get(0).([]models.Sweet), args.Error(1)
}

func (m *MockSweetRepository) GetByID(id string) (*models.Sweet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *MockSweetRepository) Create(sweet *models.Sweet) error {
	args := m.Called(sweet)
	return args.Error(0)
}

func (m *MockSweetRepository) Update(sweet *models.Sweet) error {
	args := m.Called(sweet)
	return args.Error(0)
}

func (m *MockSweetRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSweetRepository) Search(filter repositories.SweetFilter) ([]models.Sweet, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Sweet), args.Error(1)
}

func (m *MockSweetRepository) AdjustStock(id string, delta int) (int, error) {
	args := m.Called(id, delta)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher records published inventory events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestSweetService_Purchase(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	service := services.NewSweetService(mockRepo, nil)

	// Successful purchase decrements by the requested quantity
	mockRepo.On("AdjustStock", "sweet-1", -3).Return(7, nil).Once()
	remaining, err := service.Purchase("sweet-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, 7, remaining)
	mockRepo.AssertExpectations(t)

	// Non-positive quantities are rejected before touching the repository
	_, err = service.Purchase("sweet-1", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	_, err = service.Purchase("sweet-1", -2)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	mockRepo.AssertNotCalled(t, "AdjustStock", "sweet-1", 0)

	// Requests exceeding stock surface ErrInsufficientStock unchanged
	mockRepo.On("AdjustStock", "sweet-1", -100).Return(0, repositories.ErrInsufficientStock).Once()
	_, err = service.Purchase("sweet-1", 100)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	mockRepo.AssertExpectations(t)

	// Unknown sweet
	mockRepo.On("AdjustStock", "missing", -1).Return(0, repositories.ErrSweetNotFound).Once()
	_, err = service.Purchase("missing", 1)
	assert.ErrorIs(t, err, repositories.ErrSweetNotFound)
	mockRepo.AssertExpectations(t)
}

func TestSweetService_Restock(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	service := services.NewSweetService(mockRepo, nil)

	mockRepo.On("AdjustStock", "sweet-1", 5).Return(12, nil).Once()
	newQuantity, err := service.Restock("sweet-1", 5)
	assert.NoError(t, err)
	assert.Equal(t, 12, newQuantity)
	mockRepo.AssertExpectations(t)

	_, err = service.Restock("sweet-1", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	mockRepo.On("AdjustStock", "missing", 5).Return(0, repositories.ErrSweetNotFound).Once()
	_, err = service.Restock("missing", 5)
	assert.ErrorIs(t, err, repositories.ErrSweetNotFound)
	mockRepo.AssertExpectations(t)
}

func TestSweetService_PublishesInventoryEvents(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewSweetService(mockRepo, mockPublisher)

	mockRepo.On("AdjustStock", "sweet-1", -3).Return(7, nil).Once()
	mockPublisher.On("Publish", "sweet.purchased", mock.AnythingOfType("[]uint8")).Return(nil).Once()

	_, err := service.Purchase("sweet-1", 3)
	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)

	payload := mockPublisher.Calls[0].Arguments.Get(1).([]byte)
	var event map[string]interface{}
	assert.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "sweet-1", event["sweet_id"])
	assert.Equal(t, float64(3), event["quantity"])
	assert.Equal(t, float64(7), event["remaining_quantity"])

	mockRepo.On("AdjustStock", "sweet-1", 5).Return(12, nil).Once()
	mockPublisher.On("Publish", "sweet.restocked", mock.AnythingOfType("[]uint8")).Return(nil).Once()
	_, err = service.Restock("sweet-1", 5)
	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestSweetService_UpdateSweet(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	service := services.NewSweetService(mockRepo, nil)

	stored := &models.Sweet{ID: "sweet-1", Name: "Ladoo", Category: "Indian", Price: 2.5, Quantity: 10}

	// Only fields present in the patch change
	mockRepo.On("GetByID", "sweet-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Sweet")).Return(nil).Once()

	newPrice := 3.0
	updated, err := service.UpdateSweet("sweet-1", services.SweetPatch{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, updated.Price)
	assert.Equal(t, "Ladoo", updated.Name)
	assert.Equal(t, 10, updated.Quantity)
	mockRepo.AssertExpectations(t)

	// Update deliberately does not guard the stock invariant: a negative
	// quantity goes through. Only purchase/restock enforce quantity >= 0.
	mockRepo.On("GetByID", "sweet-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Sweet")).Return(nil).Once()

	negative := -5
	updated, err = service.UpdateSweet("sweet-1", services.SweetPatch{Quantity: &negative})
	assert.NoError(t, err)
	assert.Equal(t, -5, updated.Quantity)
	mockRepo.AssertExpectations(t)

	// Unknown sweet
	mockRepo.On("GetByID", "missing").Return(nil, repositories.ErrSweetNotFound).Once()
	_, err = service.UpdateSweet("missing", services.SweetPatch{Price: &newPrice})
	assert.ErrorIs(t, err, repositories.ErrSweetNotFound)
	mockRepo.AssertExpectations(t)
}

func TestSweetService_SearchSweets(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	service := services.NewSweetService(mockRepo, nil)

	minPrice := 1.0
	filter := repositories.SweetFilter{Name: "lad", MinPrice: &minPrice}
	expected := []models.Sweet{{ID: "sweet-1", Name: "Ladoo", Category: "Indian", Price: 2.5}}

	mockRepo.On("Search", filter).Return(expected, nil).Once()
	sweets, err := service.SearchSweets(filter)
	assert.NoError(t, err)
	assert.Equal(t, expected, sweets)
	mockRepo.AssertExpectations(t)
}

func TestSweetService_DeleteSweet(t *testing.T) {
	mockRepo := new(MockSweetRepository)
	service := services.NewSweetService(mockRepo, nil)

	mockRepo.On("Delete", "sweet-1").Return(nil).Once()
	assert.NoError(t, service.DeleteSweet("sweet-1"))

	mockRepo.On("Delete", "missing").Return(repositories.ErrSweetNotFound).Once()
	assert.ErrorIs(t, service.DeleteSweet("missing"), repositories.ErrSweetNotFound)
	mockRepo.AssertExpectations(t)
}
