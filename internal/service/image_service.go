package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"

	"ladle/internal/cache"
	"ladle/internal/config"
	"ladle/internal/middleware"
	"ladle/internal/models"
	"ladle/internal/repository"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
	"gorm.io/gorm"
)

const (
	DefaultMediaDir             = "/tmp/ladle/media"
	DefaultImageMaxUploadSizeMB = 10
)

// UploadRecipeImageInput is the payload for attaching an image to a recipe.
type UploadRecipeImageInput struct {
	UserID   uint
	RecipeID uint
	Filename string
	Content  []byte
}

// ImageService validates and stores recipe images. Accepted formats are
// JPEG, PNG and WebP; anything else is rejected before touching disk.
type ImageService struct {
	recipeRepo         repository.RecipeRepository
	mediaDir           string
	maxUploadSizeBytes int64
}

// NewImageService returns an ImageService configured from cfg.
func NewImageService(recipeRepo repository.RecipeRepository, cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.MediaDir != "" {
			mediaDir = cfg.MediaDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		recipeRepo:         recipeRepo,
		mediaDir:           mediaDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// MediaDir returns the directory uploaded images are stored under.
func (s *ImageService) MediaDir() string {
	return s.mediaDir
}

// ImageURL maps a stored image path to its public URL. Empty path means the
// recipe has no image.
func (s *ImageService) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

// Upload validates the payload, stores it on disk and records the new image
// path on the recipe. A previously attached image file is removed.
func (s *ImageService) Upload(ctx context.Context, in UploadRecipeImageInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.UserID, in.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", in.RecipeID)
		}
		return nil, models.NewInternalError(err)
	}

	if len(in.Content) == 0 {
		middleware.ImageUploads.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		middleware.ImageUploads.WithLabelValues("too_large").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	ext, ok := extensionForMIME(detectedType)
	if !ok {
		middleware.ImageUploads.WithLabelValues("invalid").Inc()
		return nil, models.NewUnsupportedMediaError("Unsupported image type")
	}

	if _, _, err := image.Decode(bytes.NewReader(in.Content)); err != nil {
		middleware.ImageUploads.WithLabelValues("invalid").Inc()
		return nil, models.NewUnsupportedMediaError("Invalid image file")
	}

	relPath := filepath.ToSlash(filepath.Join("recipes", uuid.NewString()+ext))
	absPath := filepath.Join(s.mediaDir, relPath)
	if err := writeBytesToFile(absPath, in.Content); err != nil {
		return nil, models.NewInternalError(err)
	}

	oldPath := recipe.ImagePath
	if err := s.recipeRepo.UpdateImagePath(ctx, recipe, relPath); err != nil {
		_ = os.Remove(absPath)
		return nil, models.NewInternalError(err)
	}

	if oldPath != "" {
		_ = os.Remove(filepath.Join(s.mediaDir, oldPath))
	}

	cache.InvalidateRecipe(ctx, in.UserID, in.RecipeID)
	middleware.ImageUploads.WithLabelValues("success").Inc()
	return recipe, nil
}

// extensionForMIME maps an allow-listed image MIME type to a file extension.
func extensionForMIME(mimeType string) (string, bool) {
	switch mimeType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}

func writeBytesToFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
