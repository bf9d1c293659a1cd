package server

import (
	"ladle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
// Pass assigned_only=1 to restrict the list to tags used by at least one recipe.
func (s *Server) GetTags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	assignedOnly := c.QueryBool("assigned_only", false)

	tags, err := s.tagService.List(c.UserContext(), userID, assignedOnly)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(tags)
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.Create(c.UserContext(), userID, req.Name)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}
