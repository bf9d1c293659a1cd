package service

import (
	"context"
	"errors"
	"strings"

	"ladle/internal/cache"
	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/validation"

	"gorm.io/gorm"
)

// CreateRecipeInput is the payload for creating a recipe.
type CreateRecipeInput struct {
	UserID        uint
	Title         string
	TimeMinutes   int
	Price         string
	TagIDs        []uint
	IngredientIDs []uint
}

// UpdateRecipeInput is the payload for updating a recipe. Nil pointers mean
// "field absent from the payload". With Partial set, absent fields are left
// untouched; otherwise absent associations are cleared and absent scalar
// fields are a validation error.
type UpdateRecipeInput struct {
	UserID        uint
	RecipeID      uint
	Title         *string
	TimeMinutes   *int
	Price         *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
	Partial       bool
}

// RecipeService manages recipes and their tag/ingredient associations.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

// List returns the user's recipes, optionally restricted to those whose tag or
// ingredient set intersects the filter ids.
func (s *RecipeService) List(ctx context.Context, userID uint, f repository.RecipeFilter) ([]*models.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx, userID, f)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// Get returns one recipe with its tags and ingredients loaded. A recipe owned
// by another user yields the same NotFound as a missing one.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var cached models.Recipe
	if err := cache.GetJSON(ctx, cache.RecipeDetailKey(userID, recipeID), &cached); err == nil {
		return &cached, nil
	}

	recipe, err := s.recipeRepo.GetByID(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", recipeID)
		}
		return nil, models.NewInternalError(err)
	}

	cache.SetJSON(ctx, cache.RecipeDetailKey(userID, recipeID), recipe, cache.RecipeDetailTTL)
	return recipe, nil
}

// Create validates the input, resolves the requested associations against the
// owner's tags and ingredients, and persists everything atomically.
func (s *RecipeService) Create(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.TimeMinutes <= 0 {
		return nil, models.NewValidationError("time_minutes must be a positive integer")
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tags, err := s.resolveTags(ctx, in.UserID, in.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, in.UserID, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       title,
		TimeMinutes: in.TimeMinutes,
		Price:       models.NormalizePrice(in.Price),
		UserID:      in.UserID,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipe, nil
}

// Update applies a partial or full update. Full updates use replace
// semantics: associations absent from the payload are cleared.
func (s *RecipeService) Update(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.UserID, in.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", in.RecipeID)
		}
		return nil, models.NewInternalError(err)
	}

	if !in.Partial {
		if in.Title == nil || in.TimeMinutes == nil || in.Price == nil {
			return nil, models.NewValidationError("Title, time_minutes and price are required")
		}
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		recipe.Title = title
	}
	if in.TimeMinutes != nil {
		if *in.TimeMinutes <= 0 {
			return nil, models.NewValidationError("time_minutes must be a positive integer")
		}
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		if err := validation.ValidatePrice(*in.Price); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		recipe.Price = models.NormalizePrice(*in.Price)
	}

	replaceTags := !in.Partial || in.TagIDs != nil
	replaceIngredients := !in.Partial || in.IngredientIDs != nil

	if replaceTags {
		var ids []uint
		if in.TagIDs != nil {
			ids = *in.TagIDs
		}
		tags, err := s.resolveTags(ctx, in.UserID, ids)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if replaceIngredients {
		var ids []uint
		if in.IngredientIDs != nil {
			ids = *in.IngredientIDs
		}
		ingredients, err := s.resolveIngredients(ctx, in.UserID, ids)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := s.recipeRepo.Save(ctx, recipe, replaceTags, replaceIngredients); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateRecipe(ctx, in.UserID, recipe.ID)

	// Reload so the response reflects exactly what was persisted.
	updated, err := s.recipeRepo.GetByID(ctx, in.UserID, in.RecipeID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

// Delete removes the recipe and its association rows. The referenced tags and
// ingredients are left in place.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Recipe", recipeID)
		}
		return models.NewInternalError(err)
	}

	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateRecipe(ctx, userID, recipeID)
	return nil
}

// resolveTags maps ids onto the owner's tags. Any id that does not resolve
// under the owner's scope rejects the whole request: no partial association.
func (s *RecipeService) resolveTags(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tagRepo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(tags) != len(ids) {
		return nil, models.NewValidationError("tags contains an unknown id")
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(ingredients) != len(ids) {
		return nil, models.NewValidationError("ingredients contains an unknown id")
	}
	return ingredients, nil
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
