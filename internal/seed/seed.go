// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"ladle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	RecipesPerUser int
	ShouldClean    bool
}

var (
	tagNames = []string{
		"Breakfast", "Lunch", "Dinner", "Dessert", "Vegan", "Vegetarian",
		"Gluten-free", "Quick", "Comfort food", "Spicy", "Baking", "Soup",
		"Salad", "Grill", "Slow cooker", "One pot", "Budget", "Holiday",
	}

	ingredientNames = []string{
		"Salt", "Pepper", "Olive oil", "Garlic", "Onion", "Butter", "Eggs",
		"Flour", "Sugar", "Milk", "Tomato", "Chicken", "Beef", "Rice",
		"Pasta", "Cheese", "Basil", "Thyme", "Lemon", "Ginger", "Soy sauce",
		"Carrot", "Potato", "Mushroom", "Spinach", "Cream", "Honey",
	}

	dishStyles = []string{
		"Roasted", "Grilled", "Slow-cooked", "Pan-fried", "Baked", "Smoked",
		"Braised", "Steamed", "Charred", "Glazed",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes each...",
		opts.NumUsers, opts.RecipesPerUser)
	gofakeit.Seed(0)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	total := 0
	for _, user := range users {
		tags, err := createTags(db, user)
		if err != nil {
			return fmt.Errorf("failed to create tags for user %d: %w", user.ID, err)
		}
		ingredients, err := createIngredients(db, user)
		if err != nil {
			return fmt.Errorf("failed to create ingredients for user %d: %w", user.ID, err)
		}
		n, err := createRecipes(db, user, tags, ingredients, opts.RecipesPerUser)
		if err != nil {
			return fmt.Errorf("failed to create recipes for user %d: %w", user.ID, err)
		}
		total += n
	}
	log.Printf("%d recipes created", total)

	return nil
}

func clearData(db *gorm.DB) error {
	// Join tables first, then owned rows, then users.
	for _, stmt := range []string{
		"DELETE FROM recipe_tags",
		"DELETE FROM recipe_ingredients",
		"DELETE FROM recipes",
		"DELETE FROM tags",
		"DELETE FROM ingredients",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d_%s", i+1, gofakeit.Email()),
			Password: string(hashedPassword),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createTags(db *gorm.DB, user *models.User) ([]models.Tag, error) {
	count := 3 + rand.Intn(5)
	picked := rand.Perm(len(tagNames))[:count]

	tags := make([]models.Tag, 0, count)
	for _, idx := range picked {
		tag := models.Tag{Name: tagNames[idx], UserID: user.ID}
		if err := db.Create(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createIngredients(db *gorm.DB, user *models.User) ([]models.Ingredient, error) {
	count := 5 + rand.Intn(10)
	picked := rand.Perm(len(ingredientNames))[:count]

	ingredients := make([]models.Ingredient, 0, count)
	for _, idx := range picked {
		ingredient := models.Ingredient{Name: ingredientNames[idx], UserID: user.ID}
		if err := db.Create(&ingredient).Error; err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func createRecipes(db *gorm.DB, user *models.User, tags []models.Tag, ingredients []models.Ingredient, count int) (int, error) {
	for i := 0; i < count; i++ {
		recipe := models.Recipe{
			Title:       fmt.Sprintf("%s %s", dishStyles[rand.Intn(len(dishStyles))], gofakeit.Dinner()),
			TimeMinutes: 5 + rand.Intn(116),
			Price:       fmt.Sprintf("%d.%02d", rand.Intn(50), rand.Intn(100)),
			UserID:      user.ID,
			Tags:        pickTags(tags),
			Ingredients: pickIngredients(ingredients),
		}
		if err := db.Create(&recipe).Error; err != nil {
			return i, err
		}
	}
	return count, nil
}

func pickTags(tags []models.Tag) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	count := 1 + rand.Intn(min(3, len(tags)))
	picked := rand.Perm(len(tags))[:count]
	out := make([]models.Tag, 0, count)
	for _, idx := range picked {
		out = append(out, tags[idx])
	}
	return out
}

func pickIngredients(ingredients []models.Ingredient) []models.Ingredient {
	if len(ingredients) == 0 {
		return nil
	}
	count := 2 + rand.Intn(min(5, len(ingredients)))
	if count > len(ingredients) {
		count = len(ingredients)
	}
	picked := rand.Perm(len(ingredients))[:count]
	out := make([]models.Ingredient, 0, count)
	for _, idx := range picked {
		out = append(out, ingredients[idx])
	}
	return out
}
