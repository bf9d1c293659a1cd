package repository

import (
	"context"

	"ladle/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	// ListByUser returns the user's tags ordered by name descending.
	// With assignedOnly set, only tags attached to at least one of the
	// user's recipes are returned, each exactly once.
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error)
	// GetByIDs resolves ids against the user's tags. Ids owned by another
	// user are simply not returned.
	GetByIDs(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("tags.user_id = ?", userID).
		Order("tags.name DESC")

	if assignedOnly {
		q = q.Distinct("tags.*").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	err := q.Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByIDs(ctx context.Context, userID uint, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&tags).Error
	return tags, err
}
