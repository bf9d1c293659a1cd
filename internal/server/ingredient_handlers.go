package server

import (
	"ladle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetIngredients handles GET /api/ingredients
// Pass assigned_only=1 to restrict the list to ingredients used by at least one recipe.
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	assignedOnly := c.QueryBool("assigned_only", false)

	ingredients, err := s.ingredientService.List(c.UserContext(), userID, assignedOnly)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(ingredients)
}

// CreateIngredient handles POST /api/ingredients
func (s *Server) CreateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ingredient, err := s.ingredientService.Create(c.UserContext(), userID, req.Name)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(ingredient)
}
