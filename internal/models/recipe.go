package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Tag labels recipes for a single user. Tags are write-once: the API
// exposes list and create only.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Ingredient is a user-owned recipe component, same lifecycle as Tag.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Recipe is the aggregate resource. Price is a decimal(5,2) column kept as a
// string end to end so "5.00" survives a round-trip without float drift.
// Tags and Ingredients must belong to the same owner as the recipe; the
// service layer rejects cross-owner ids before anything is written.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       string       `gorm:"type:decimal(5,2);not null" json:"price"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	ImagePath   string       `json:"image_path,omitempty"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NormalizePrice returns the canonical two-decimal form of a price value,
// e.g. "5" and "5.5" become "5.00" and "5.50". Database drivers with numeric
// column affinity may strip trailing zeros, so every read goes through here.
// The input must already match the accepted price format or be a bare
// numeric value; anything else is returned unchanged.
func NormalizePrice(price string) string {
	whole, frac, found := strings.Cut(price, ".")
	if whole == "" {
		return price
	}
	if !found {
		frac = ""
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return whole + "." + frac[:2]
}

// AfterFind keeps the price in canonical form regardless of driver affinity.
func (r *Recipe) AfterFind(_ *gorm.DB) error {
	r.Price = NormalizePrice(r.Price)
	return nil
}

// TagIDs returns the ids of the recipe's tags in load order.
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of the recipe's ingredients in load order.
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}
