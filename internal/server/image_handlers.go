package server

import (
	"io"

	"ladle/internal/models"
	"ladle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadRecipeImage handles POST /api/recipes/:id/image
// The multipart field name is "image". A new upload replaces the previous one.
func (s *Server) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	recipe, err := s.imageService.Upload(c.UserContext(), service.UploadRecipeImageInput{
		UserID:   userID,
		RecipeID: recipeID,
		Filename: file.Filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"id":        recipe.ID,
		"image_url": s.imageService.ImageURL(recipe.ImagePath),
	})
}
