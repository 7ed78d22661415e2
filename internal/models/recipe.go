package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the storage row for a recipe. Ingredients live in the
// recipe_ingredients join table; ratings in ratings.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	ImageURL     string           `gorm:"size:512" json:"image_url"`
	PrepTime     int              `gorm:"not null;default:0" json:"prep_time"`
	CookTime     int              `gorm:"not null;default:0" json:"cook_time"`
	Servings     int              `gorm:"not null;default:1" json:"servings"`
	Difficulty   string           `gorm:"size:16;not null;default:'easy'" json:"difficulty"`
	Cuisine      string           `gorm:"size:64" json:"cuisine"`
	DietaryTypes JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_types"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	AuthorID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	IngredientLinks []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Ratings         []Rating           `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient is deduplicated by exact name. Rows are created lazily by the
// first recipe that references a new name and are never deleted.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with an amount and unit.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Unit         string    `gorm:"size:32" json:"unit"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (ri *RecipeIngredient) BeforeCreate(*gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// Rating holds at most one row per (recipe, user), enforced by the unique
// index and upsert-on-conflict writes.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_recipe_user" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_recipe_user" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Rating) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SavedRecipe marks a bookmark. Existence only, no payload.
type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SavedRecipe) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
