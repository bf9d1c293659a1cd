package repository

import (
	"context"

	"ladle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter describes the optional list filters. An empty id slice
// disables that filter entirely. Id membership is OR semantics: a recipe
// matches when its tag (ingredient) set intersects the given ids.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	// Create persists the recipe together with its association rows in a
	// single transaction.
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error)
	List(ctx context.Context, userID uint, f RecipeFilter) ([]*models.Recipe, error)
	// Save writes the recipe's scalar fields and, when requested, replaces
	// the tag/ingredient association sets with the ones on the struct.
	Save(ctx context.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error
	Delete(ctx context.Context, recipe *models.Recipe) error
	UpdateImagePath(ctx context.Context, recipe *models.Recipe, path string) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	// GORM wraps the insert plus association rows in one transaction, so a
	// failed association write rolls back the recipe row as well.
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, userID uint, f RecipeFilter) ([]*models.Recipe, error) {
	var recipes []*models.Recipe

	q := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Tags").
		Preload("Ingredients").
		Where("recipes.user_id = ?", userID).
		Order("recipes.id DESC")

	if len(f.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", f.TagIDs)
	}
	if len(f.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", f.IngredientIDs)
	}
	if len(f.TagIDs) > 0 || len(f.IngredientIDs) > 0 {
		// Joins can multiply rows when a recipe matches several ids.
		q = q.Distinct("recipes.*")
	}

	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Save(ctx context.Context, recipe *models.Recipe, replaceTags, replaceIngredients bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if replaceTags {
			if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
				return err
			}
		}
		if replaceIngredients {
			if err := tx.Model(recipe).Association("Ingredients").Replace(recipe.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) Delete(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Association rows go first; tags and ingredients themselves survive.
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, recipe.ID).Error
	})
}

func (r *recipeRepository) UpdateImagePath(ctx context.Context, recipe *models.Recipe, path string) error {
	err := r.db.WithContext(ctx).Model(recipe).Update("image_path", path).Error
	if err == nil {
		recipe.ImagePath = path
	}
	return err
}
