package repository

import (
	"context"
	"testing"

	"ladle/internal/models"
	"ladle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecipeRepositoryGetByIDScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")
	other := createTestOwner(t, db, "other@example.com")

	recipe := &models.Recipe{Title: "Stew", TimeMinutes: 30, Price: "5.00", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, recipe))

	got, err := repo.GetByID(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stew", got.Title)

	_, err = repo.GetByID(ctx, other.ID, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepositoryListOrderAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")

	vegan := models.Tag{Name: "Vegan", UserID: owner.ID}
	dessert := models.Tag{Name: "Dessert", UserID: owner.ID}
	garlic := models.Ingredient{Name: "Garlic", UserID: owner.ID}
	require.NoError(t, db.Create(&vegan).Error)
	require.NoError(t, db.Create(&dessert).Error)
	require.NoError(t, db.Create(&garlic).Error)

	salad := &models.Recipe{Title: "Salad", TimeMinutes: 10, Price: "3.00", UserID: owner.ID, Tags: []models.Tag{vegan}}
	cake := &models.Recipe{Title: "Cake", TimeMinutes: 60, Price: "8.00", UserID: owner.ID, Tags: []models.Tag{vegan, dessert}, Ingredients: []models.Ingredient{garlic}}
	require.NoError(t, repo.Create(ctx, salad))
	require.NoError(t, repo.Create(ctx, cake))

	t.Run("NewestFirst", func(t *testing.T) {
		recipes, err := repo.List(ctx, owner.ID, RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, cake.ID, recipes[0].ID)
		assert.Equal(t, salad.ID, recipes[1].ID)
	})

	t.Run("PreloadsAssociations", func(t *testing.T) {
		recipes, err := repo.List(ctx, owner.ID, RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Len(t, recipes[0].Tags, 2)
		assert.Len(t, recipes[0].Ingredients, 1)
	})

	t.Run("FilterByTagDistinct", func(t *testing.T) {
		// Cake carries both filter tags but must appear once.
		recipes, err := repo.List(ctx, owner.ID, RecipeFilter{TagIDs: []uint{vegan.ID, dessert.ID}})
		require.NoError(t, err)
		require.Len(t, recipes, 2)
	})

	t.Run("FilterByIngredient", func(t *testing.T) {
		recipes, err := repo.List(ctx, owner.ID, RecipeFilter{IngredientIDs: []uint{garlic.ID}})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, cake.ID, recipes[0].ID)
	})

	t.Run("FilterNoMatch", func(t *testing.T) {
		recipes, err := repo.List(ctx, owner.ID, RecipeFilter{TagIDs: []uint{9999}})
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}

func TestRecipeRepositorySaveReplacesAssociations(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")

	oldTag := models.Tag{Name: "Old", UserID: owner.ID}
	newTag := models.Tag{Name: "New", UserID: owner.ID}
	require.NoError(t, db.Create(&oldTag).Error)
	require.NoError(t, db.Create(&newTag).Error)

	recipe := &models.Recipe{Title: "Stew", TimeMinutes: 30, Price: "5.00", UserID: owner.ID, Tags: []models.Tag{oldTag}}
	require.NoError(t, repo.Create(ctx, recipe))

	recipe.Tags = []models.Tag{newTag}
	require.NoError(t, repo.Save(ctx, recipe, true, false))

	got, err := repo.GetByID(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, newTag.ID, got.Tags[0].ID)
}

func TestRecipeRepositorySaveClearsWithEmptySet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")

	tag := models.Tag{Name: "Dinner", UserID: owner.ID}
	require.NoError(t, db.Create(&tag).Error)

	recipe := &models.Recipe{Title: "Stew", TimeMinutes: 30, Price: "5.00", UserID: owner.ID, Tags: []models.Tag{tag}}
	require.NoError(t, repo.Create(ctx, recipe))

	recipe.Tags = []models.Tag{}
	require.NoError(t, repo.Save(ctx, recipe, true, false))

	got, err := repo.GetByID(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestRecipeRepositoryDeleteKeepsAttributes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")

	tag := models.Tag{Name: "Dinner", UserID: owner.ID}
	ingredient := models.Ingredient{Name: "Garlic", UserID: owner.ID}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Create(&ingredient).Error)

	recipe := &models.Recipe{Title: "Stew", TimeMinutes: 30, Price: "5.00", UserID: owner.ID,
		Tags: []models.Tag{tag}, Ingredients: []models.Ingredient{ingredient}}
	require.NoError(t, repo.Create(ctx, recipe))

	require.NoError(t, repo.Delete(ctx, recipe))

	_, err := repo.GetByID(ctx, owner.ID, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Attribute rows survive, join rows are gone.
	var tagCount, joinCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	require.NoError(t, db.Table("recipe_tags").Count(&joinCount).Error)
	assert.EqualValues(t, 1, tagCount)
	assert.Zero(t, joinCount)
}

func TestRecipeRepositoryUpdateImagePath(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	owner := createTestOwner(t, db, "owner@example.com")
	recipe := &models.Recipe{Title: "Stew", TimeMinutes: 30, Price: "5.00", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, recipe))

	require.NoError(t, repo.UpdateImagePath(ctx, recipe, "recipes/abc.png"))
	assert.Equal(t, "recipes/abc.png", recipe.ImagePath)

	got, err := repo.GetByID(ctx, owner.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "recipes/abc.png", got.ImagePath)
}
