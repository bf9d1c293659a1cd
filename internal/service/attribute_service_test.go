package service

import (
	"context"
	"testing"

	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagServiceCreateTrimsName(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := createOwner(t, db, "owner@example.com")
	svc := NewTagService(repository.NewTagRepository(db))

	tag, err := svc.Create(context.Background(), owner.ID, "  Vegan  ")
	require.NoError(t, err)
	assert.Equal(t, "Vegan", tag.Name)
	assert.Equal(t, owner.ID, tag.UserID)
}

func TestTagServiceCreateRejectsBlankName(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := createOwner(t, db, "owner@example.com")
	svc := NewTagService(repository.NewTagRepository(db))

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), owner.ID, name)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	}
}

func TestIngredientServiceCreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := createOwner(t, db, "owner@example.com")
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	_, err := svc.Create(context.Background(), owner.ID, "Garlic")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner.ID, "Salt")
	require.NoError(t, err)

	ingredients, err := svc.List(context.Background(), owner.ID, false)
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	// Name descending.
	assert.Equal(t, "Salt", ingredients[0].Name)
	assert.Equal(t, "Garlic", ingredients[1].Name)
}
