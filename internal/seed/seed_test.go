package seed

import (
	"os"
	"path/filepath"
	"testing"

	"ladle/internal/models"
	"ladle/internal/testutil"
	"ladle/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestSeedCreatesScopedData(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := Seed(db, Options{NumUsers: 2, RecipesPerUser: 3, ShouldClean: false})
	require.NoError(t, err)

	assert.EqualValues(t, 2, countRows(t, db, &models.User{}))
	assert.EqualValues(t, 6, countRows(t, db, &models.Recipe{}))
	assert.Greater(t, countRows(t, db, &models.Tag{}), int64(0))
	assert.Greater(t, countRows(t, db, &models.Ingredient{}), int64(0))

	var recipes []models.Recipe
	require.NoError(t, db.Preload("Tags").Preload("Ingredients").Find(&recipes).Error)
	for _, recipe := range recipes {
		assert.NotEmpty(t, recipe.Title)
		assert.Greater(t, recipe.TimeMinutes, 0)
		assert.NoError(t, validation.ValidatePrice(recipe.Price))
		for _, tag := range recipe.Tags {
			assert.Equal(t, recipe.UserID, tag.UserID, "recipe %d tagged with foreign tag", recipe.ID)
		}
		for _, ingredient := range recipe.Ingredients {
			assert.Equal(t, recipe.UserID, ingredient.UserID)
		}
	}
}

func TestSeedCleanRemovesExistingData(t *testing.T) {
	db := testutil.NewTestDB(t)

	stale := models.User{Name: "Stale", Email: "stale@example.com", Password: "x"}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Old", UserID: stale.ID}).Error)

	err := Seed(db, Options{NumUsers: 1, RecipesPerUser: 1, ShouldClean: true})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "stale@example.com").Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}))
}

const fixtureYAML = `users:
  - name: Alice
    email: alice@example.com
    password: Password12345
    tags: [Vegan, Dessert]
    ingredients: [Flour, Sugar]
    recipes:
      - title: Vegan Brownies
        time_minutes: 45
        price: "7.50"
        tags: [Vegan, Dessert]
        ingredients: [Flour, Sugar]
  - name: Bob
    email: bob@example.com
    tags: [Quick]
    ingredients: [Eggs]
    recipes:
      - title: Scrambled Eggs
        time_minutes: 10
        price: "2.00"
        tags: [Quick]
        ingredients: [Eggs]
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFixtures(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := LoadFixtures(db, writeFixture(t, fixtureYAML))
	require.NoError(t, err)

	var alice models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("Password12345")))

	var bob models.User
	require.NoError(t, db.Where("email = ?", "bob@example.com").First(&bob).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(bob.Password), []byte("password123")),
		"omitted password should fall back to the default")

	var brownies models.Recipe
	require.NoError(t, db.Preload("Tags").Preload("Ingredients").
		Where("title = ?", "Vegan Brownies").First(&brownies).Error)
	assert.Equal(t, alice.ID, brownies.UserID)
	assert.Equal(t, "7.50", brownies.Price)
	assert.Len(t, brownies.Tags, 2)
	assert.Len(t, brownies.Ingredients, 2)
}

func TestLoadFixturesUnknownTag(t *testing.T) {
	db := testutil.NewTestDB(t)

	broken := `users:
  - name: Carol
    email: carol@example.com
    tags: [Vegan]
    recipes:
      - title: Mystery Dish
        time_minutes: 20
        price: "5.00"
        tags: [Nonexistent]
`
	err := LoadFixtures(db, writeFixture(t, broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tag")
}

func TestLoadFixturesMissingFile(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := LoadFixtures(db, filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read fixture file")
}
