package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/dto"
	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/service"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

// CategoriesHandler serves the category registry, reads for any signed-in
// account and writes for admins.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /categories. Active categories only.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": dto.NewCategoryResponses(categories)})
}

// ListAll GET /categories/all. Includes deactivated entries.
func (h *CategoriesHandler) ListAll(c *fiber.Ctx) error {
	categories, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": dto.NewCategoryResponses(categories)})
}

// Create POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Create(c.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// Update PUT /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Update(c.Context(), c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// Delete DELETE /categories/:id. Deactivates rather than removes so
// existing tickets keep their category name.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	category, err := h.service.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// Metadata GET /metadata. Vocabularies for building ticket forms.
func (h *CategoriesHandler) Metadata(c *fiber.Ctx) error {
	categories, err := h.service.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.MetadataResponse{
		Categories: dto.NewCategoryResponses(categories),
		Priorities: domain.TicketPriorities,
		Statuses:   domain.TicketStatuses,
	})
}
