package service

import (
	"context"
	"errors"
	"strings"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

const defaultCategoryColor = "#6B7280"

// CategoryService manages the ticket category registry.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput carries create/update fields. Nil pointers on update leave
// the current value in place.
type CategoryInput struct {
	Name        *string
	Description *string
	Color       *string
	IsActive    *bool
}

// ListActive returns the categories offered to ticket filers.
func (s *CategoryService) ListActive(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// ListAll returns every category including deactivated ones, for the admin
// console.
func (s *CategoryService) ListAll(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// Create registers a new category.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	category := &domain.Category{
		Name:     strings.TrimSpace(*input.Name),
		Color:    defaultCategoryColor,
		IsActive: true,
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Color != nil && *input.Color != "" {
		category.Color = *input.Color
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("category already exists", map[string]any{"name": category.Name})
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Update applies partial edits to a category.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapCategoryErr(err, id)
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Color != nil && *input.Color != "" {
		category.Color = *input.Color
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("category already exists", map[string]any{"name": category.Name})
		}
		return nil, s.mapCategoryErr(err, id)
	}
	return category, nil
}

// Deactivate soft-deletes a category. Existing tickets keep the name; new
// tickets can no longer pick it.
func (s *CategoryService) Deactivate(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapCategoryErr(err, id)
	}
	if !category.IsActive {
		return category, nil
	}
	category.IsActive = false
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, s.mapCategoryErr(err, id)
	}
	return category, nil
}

func (s *CategoryService) mapCategoryErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("category", map[string]any{"category_id": id})
	}
	return apperrors.MapError(err)
}
