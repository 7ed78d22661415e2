package service

import (
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

// RecipeView maps a storage row with its loaded associations to the view
// model. Pure: no I/O, inputs are not mutated.
//
// AverageRating is the arithmetic mean of the attached rating values and is
// nil when there are none. The mean of an empty set is undefined, not 0; a
// never-rated recipe must be distinguishable from a recipe rated 0.
func RecipeView(row models.Recipe) types.Recipe {
	ingredients := make([]types.Ingredient, 0, len(row.IngredientLinks))
	for _, link := range row.IngredientLinks {
		ingredients = append(ingredients, types.Ingredient{
			Name:   link.Ingredient.Name,
			Amount: link.Amount,
			Unit:   link.Unit,
		})
	}

	ratings := make([]types.Rating, 0, len(row.Ratings))
	var sum int
	for _, r := range row.Ratings {
		ratings = append(ratings, types.Rating{
			UserID:  r.UserID,
			Value:   r.Value,
			Comment: r.Comment,
		})
		sum += r.Value
	}

	var avg *float64
	if len(row.Ratings) > 0 {
		mean := float64(sum) / float64(len(row.Ratings))
		avg = &mean
	}

	return types.Recipe{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		ImageURL:      row.ImageURL,
		PrepTime:      row.PrepTime,
		CookTime:      row.CookTime,
		Servings:      row.Servings,
		Difficulty:    row.Difficulty,
		Cuisine:       row.Cuisine,
		DietaryTypes:  append([]string(nil), row.DietaryTypes...),
		Ingredients:   ingredients,
		Instructions:  append([]string(nil), row.Instructions...),
		AuthorID:      row.AuthorID,
		Ratings:       ratings,
		AverageRating: avg,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// RecipeRow maps caller input to a storage row for insertion. Server-generated
// fields (id, author, timestamps) are left zero; ingredient links are written
// separately by the orchestrator.
func RecipeRow(input types.RecipeInput) models.Recipe {
	return models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   input.Difficulty,
		Cuisine:      input.Cuisine,
		DietaryTypes: models.JSONBStringArray(append([]string(nil), input.DietaryTypes...)),
		Instructions: models.JSONBStringArray(append([]string(nil), input.Instructions...)),
	}
}
