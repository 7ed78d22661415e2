package types

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels recognized for recipes.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	// DifficultyAll is the filter sentinel meaning "no difficulty filter".
	DifficultyAll = "all"
)

// Ingredient is the flattened view of a recipe ingredient. The ingredient's
// storage identity is deliberately absent.
type Ingredient struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Rating is the view of a single user's rating of a recipe.
type Rating struct {
	UserID  uuid.UUID `json:"userId"`
	Value   int       `json:"value"`
	Comment string    `json:"comment,omitempty"`
}

// Recipe is the denormalized view model consumed by the rendering layer.
// AverageRating is recomputed from Ratings on every read and is nil, not 0,
// when there are no ratings.
type Recipe struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ImageURL      string       `json:"imageUrl"`
	PrepTime      int          `json:"prepTime"`
	CookTime      int          `json:"cookTime"`
	Servings      int          `json:"servings"`
	Difficulty    string       `json:"difficulty"`
	Cuisine       string       `json:"cuisine"`
	DietaryTypes  []string     `json:"dietaryTypes"`
	Ingredients   []Ingredient `json:"ingredients"`
	Instructions  []string     `json:"instructions"`
	AuthorID      uuid.UUID    `json:"author_id"`
	Ratings       []Rating     `json:"ratings"`
	AverageRating *float64     `json:"averageRating,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// RecipeInput carries caller-supplied recipe data for creation. Server-owned
// fields (id, author, timestamps) are absent.
type RecipeInput struct {
	Title        string       `json:"title" validate:"required,max=255"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"imageUrl"`
	PrepTime     int          `json:"prepTime" validate:"gte=0"`
	CookTime     int          `json:"cookTime" validate:"gte=0"`
	Servings     int          `json:"servings" validate:"gt=0"`
	Difficulty   string       `json:"difficulty" validate:"oneof=easy medium hard"`
	Cuisine      string       `json:"cuisine"`
	DietaryTypes []string     `json:"dietaryTypes"`
	Ingredients  []Ingredient `json:"ingredients" validate:"dive"`
	Instructions []string     `json:"instructions"`
}

// RecipePatch carries partial updates. Nil fields are left untouched; a
// non-nil Ingredients fully replaces the recipe's ingredient links.
type RecipePatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	ImageURL     *string       `json:"imageUrl"`
	PrepTime     *int          `json:"prepTime"`
	CookTime     *int          `json:"cookTime"`
	Servings     *int          `json:"servings"`
	Difficulty   *string       `json:"difficulty"`
	Cuisine      *string       `json:"cuisine"`
	DietaryTypes *[]string     `json:"dietaryTypes"`
	Ingredients  *[]Ingredient `json:"ingredients"`
	Instructions *[]string     `json:"instructions"`
}

// RecipeFilter configures a recipe listing. All predicates compose
// conjunctively. DietaryTypes is containment: every requested type must be
// present on a matching recipe.
type RecipeFilter struct {
	Cuisines     []string
	DietaryTypes []string
	Difficulty   string
	SearchQuery  string
}
