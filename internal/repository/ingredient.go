package repository

import (
	"context"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository defines the interface for ingredient data operations.
// It mirrors TagRepository; the two resources share identical semantics.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error)
	GetByIDs(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	q := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("ingredients.user_id = ?", userID).
		Order("ingredients.name DESC")

	if assignedOnly {
		q = q.Distinct("ingredients.*").
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, userID uint, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&ingredients).Error
	return ingredients, err
}
