package server

import (
	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecipeListItem is the API shape for recipes in list responses. Tags and
// ingredients are id arrays; the detail response carries the full objects.
type RecipeListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Tags        []uint `json:"tags"`
	Ingredients []uint `json:"ingredients"`
	ImageURL    string `json:"image_url,omitempty"`
}

// RecipeDetail is the API shape for a single recipe.
type RecipeDetail struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
	ImageURL    string              `json:"image_url,omitempty"`
}

// GetRecipes handles GET /api/recipes
// The tags and ingredients query parameters take comma-separated id lists and
// match recipes containing any of the given ids.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	recipes, err := s.recipeService.List(c.UserContext(), userID, repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, s.toRecipeListItem(recipe))
	}

	return c.JSON(items)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.Get(c.UserContext(), userID, recipeID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(s.toRecipeDetail(recipe))
}

// CreateRecipe handles POST /api/recipes
// The response carries the list shape: tag and ingredient id arrays, not the
// nested objects of the detail endpoint.
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		TimeMinutes int    `json:"time_minutes"`
		Price       string `json:"price"`
		Tags        []uint `json:"tags"`
		Ingredients []uint `json:"ingredients"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.Create(c.UserContext(), service.CreateRecipeInput{
		UserID:        userID,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(s.toRecipeListItem(recipe))
}

// ReplaceRecipe handles PUT /api/recipes/:id
// All scalar fields are required; omitted tags or ingredients clear the
// association.
func (s *Server) ReplaceRecipe(c *fiber.Ctx) error {
	return s.updateRecipe(c, false)
}

// UpdateRecipe handles PATCH /api/recipes/:id
// Fields absent from the payload are left unchanged.
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	return s.updateRecipe(c, true)
}

func (s *Server) updateRecipe(c *fiber.Ctx, partial bool) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		TimeMinutes *int    `json:"time_minutes"`
		Price       *string `json:"price"`
		Tags        *[]uint `json:"tags"`
		Ingredients *[]uint `json:"ingredients"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.Update(c.UserContext(), service.UpdateRecipeInput{
		UserID:        userID,
		RecipeID:      recipeID,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
		Partial:       partial,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(s.toRecipeDetail(recipe))
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.Delete(c.UserContext(), userID, recipeID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) toRecipeListItem(recipe *models.Recipe) RecipeListItem {
	return RecipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Tags:        recipe.TagIDs(),
		Ingredients: recipe.IngredientIDs(),
		ImageURL:    s.imageService.ImageURL(recipe.ImagePath),
	}
}

func (s *Server) toRecipeDetail(recipe *models.Recipe) RecipeDetail {
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return RecipeDetail{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Tags:        tags,
		Ingredients: ingredients,
		ImageURL:    s.imageService.ImageURL(recipe.ImagePath),
	}
}
