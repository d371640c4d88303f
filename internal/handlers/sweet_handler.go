package handlers

import (
	"errors"
	"log"
	"strconv"

	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SweetHandler handles HTTP requests for the sweet catalog.
type SweetHandler struct {
	service  *services.SweetService
	validate *validator.Validate
}

// NewSweetHandler creates a new SweetHandler.
func NewSweetHandler(service *services.SweetService) *SweetHandler {
	return &SweetHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the sweet routes with the Fiber app. Every
// route requires an authenticated user; create, delete and restock
// additionally require an admin.
func (h *SweetHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	sweets := router.Group("/sweets", middleware.AuthRequired(authService))
	sweets.Post("/", middleware.AdminRequired(), h.HandleCreate)
	sweets.Get("/", h.HandleList)
	sweets.Get("/search", h.HandleSearch)
	sweets.Put("/:id", h.HandleUpdate)
	sweets.Delete("/:id", middleware.AdminRequired(), h.HandleDelete)
	sweets.Post("/:id/purchase", h.HandlePurchase)
	sweets.Post("/:id/restock", middleware.AdminRequired(), h.HandleRestock)
}

// SweetCreateRequest represents the request body for creating a sweet.
type SweetCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// QuantityRequest represents the request body for purchase and restock.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleCreate creates a new sweet. Admin only.
func (h *SweetHandler) HandleCreate(c *fiber.Ctx) error {
	var req SweetCreateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create sweet request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	sweet := &models.Sweet{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := h.service.CreateSweet(sweet); err != nil {
		log.Printf("Error creating sweet: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create sweet",
		})
	}
	return c.JSON(sweet)
}

// HandleList returns all sweets.
func (h *SweetHandler) HandleList(c *fiber.Ctx) error {
	sweets, err := h.service.GetAllSweets()
	if err != nil {
		log.Printf("Error listing sweets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sweets",
		})
	}
	return c.JSON(sweets)
}

// HandleSearch returns sweets matching the query filters. All filters
// are optional and combined with AND.
func (h *SweetHandler) HandleSearch(c *fiber.Ctx) error {
	filter := repositories.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("min_price"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "min_price must be a number",
			})
		}
		filter.MinPrice = &min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "max_price must be a number",
			})
		}
		filter.MaxPrice = &max
	}

	sweets, err := h.service.SearchSweets(filter)
	if err != nil {
		log.Printf("Error searching sweets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search sweets",
		})
	}
	return c.JSON(sweets)
}

// HandleUpdate applies a partial update to a sweet. Fields absent from
// the payload are left unchanged.
func (h *SweetHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch services.SweetPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update sweet request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sweet, err := h.service.UpdateSweet(c.Params("id"), patch)
	if err != nil {
		return sweetErrorResponse(c, err, "Could not update sweet")
	}
	return c.JSON(sweet)
}

// HandleDelete removes a sweet. Admin only.
func (h *SweetHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteSweet(c.Params("id")); err != nil {
		return sweetErrorResponse(c, err, "Could not delete sweet")
	}
	return c.JSON(fiber.Map{
		"msg": "Sweet deleted",
	})
}

// HandlePurchase decrements a sweet's stock.
func (h *SweetHandler) HandlePurchase(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing purchase request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	remaining, err := h.service.Purchase(c.Params("id"), req.Quantity)
	if err != nil {
		return sweetErrorResponse(c, err, "Could not purchase sweet")
	}
	return c.JSON(fiber.Map{
		"msg":                "Purchase successful",
		"remaining_quantity": remaining,
	})
}

// HandleRestock increments a sweet's stock. Admin only.
func (h *SweetHandler) HandleRestock(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing restock request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	newQuantity, err := h.service.Restock(c.Params("id"), req.Quantity)
	if err != nil {
		return sweetErrorResponse(c, err, "Could not restock sweet")
	}
	return c.JSON(fiber.Map{
		"msg":          "Restock successful",
		"new_quantity": newQuantity,
	})
}

// sweetErrorResponse maps catalog errors to their HTTP status codes.
func sweetErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, repositories.ErrSweetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Sweet not found",
		})
	case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, repositories.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid quantity or not enough stock",
		})
	default:
		log.Printf("%s: %v", fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
		})
	}
}
