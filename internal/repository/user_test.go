package repository

import (
	"context"
	"testing"

	"ladle/internal/models"
	"ladle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		user := &models.User{Name: "Alex", Email: "alex@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)
	})

	t.Run("CreateDuplicateEmail", func(t *testing.T) {
		dup := &models.User{Name: "Other", Email: "alex@example.com", Password: "hash"}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "alex@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alex", user.Name)
	})

	t.Run("GetByEmailAbsent", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByIDAbsent", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "alex@example.com")
		require.NoError(t, err)

		user.Name = "Alexandra"
		require.NoError(t, repo.Update(ctx, user))

		updated, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alexandra", updated.Name)
	})
}
