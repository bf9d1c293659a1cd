// Package service contains the application's business logic between handlers
// and repositories.
package service

import (
	"context"
	"strings"

	"ladle/internal/models"
	"ladle/internal/repository"
)

// TagService manages user-owned tags. Tags are list/create only.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List returns the user's tags, restricted to assigned ones when assignedOnly is set.
func (s *TagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Create validates and persists a new tag owned by userID.
func (s *TagService) Create(ctx context.Context, userID uint, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	tag := &models.Tag{Name: name, UserID: userID}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, models.NewInternalError(err)
	}
	return tag, nil
}

// IngredientService manages user-owned ingredients, mirroring TagService.
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

// NewIngredientService returns a new IngredientService.
func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// List returns the user's ingredients, restricted to assigned ones when assignedOnly is set.
func (s *IngredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

// Create validates and persists a new ingredient owned by userID.
func (s *IngredientService) Create(ctx context.Context, userID uint, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	ingredient := &models.Ingredient{Name: name, UserID: userID}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredient, nil
}
