package seed

import (
	"fmt"
	"os"

	"ladle/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// FixtureFile is the on-disk YAML layout for deterministic seed data.
// Recipes reference tags and ingredients by name within the same user block.
type FixtureFile struct {
	Users []UserFixture `yaml:"users"`
}

// UserFixture is a user plus everything that user owns.
type UserFixture struct {
	Name        string          `yaml:"name"`
	Email       string          `yaml:"email"`
	Password    string          `yaml:"password"`
	Tags        []string        `yaml:"tags"`
	Ingredients []string        `yaml:"ingredients"`
	Recipes     []RecipeFixture `yaml:"recipes"`
}

// RecipeFixture describes a single recipe in a fixture file.
type RecipeFixture struct {
	Title       string   `yaml:"title"`
	TimeMinutes int      `yaml:"time_minutes"`
	Price       string   `yaml:"price"`
	Tags        []string `yaml:"tags"`
	Ingredients []string `yaml:"ingredients"`
}

// LoadFixtures reads a YAML fixture file and persists its contents.
func LoadFixtures(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}

	var file FixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse fixture file: %w", err)
	}

	for i := range file.Users {
		if err := applyUserFixture(db, &file.Users[i]); err != nil {
			return fmt.Errorf("fixture user %q: %w", file.Users[i].Email, err)
		}
	}
	return nil
}

func applyUserFixture(db *gorm.DB, fx *UserFixture) error {
	password := fx.Password
	if password == "" {
		password = "password123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     fx.Name,
		Email:    fx.Email,
		Password: string(hashedPassword),
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	tagsByName := make(map[string]models.Tag, len(fx.Tags))
	for _, name := range fx.Tags {
		tag := models.Tag{Name: name, UserID: user.ID}
		if err := db.Create(&tag).Error; err != nil {
			return err
		}
		tagsByName[name] = tag
	}

	ingredientsByName := make(map[string]models.Ingredient, len(fx.Ingredients))
	for _, name := range fx.Ingredients {
		ingredient := models.Ingredient{Name: name, UserID: user.ID}
		if err := db.Create(&ingredient).Error; err != nil {
			return err
		}
		ingredientsByName[name] = ingredient
	}

	for _, rfx := range fx.Recipes {
		recipe := models.Recipe{
			Title:       rfx.Title,
			TimeMinutes: rfx.TimeMinutes,
			Price:       rfx.Price,
			UserID:      user.ID,
		}
		for _, name := range rfx.Tags {
			tag, ok := tagsByName[name]
			if !ok {
				return fmt.Errorf("recipe %q references unknown tag %q", rfx.Title, name)
			}
			recipe.Tags = append(recipe.Tags, tag)
		}
		for _, name := range rfx.Ingredients {
			ingredient, ok := ingredientsByName[name]
			if !ok {
				return fmt.Errorf("recipe %q references unknown ingredient %q", rfx.Title, name)
			}
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}
		if err := db.Create(&recipe).Error; err != nil {
			return err
		}
	}
	return nil
}
