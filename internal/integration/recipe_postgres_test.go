package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/service"
	"github.com/forkful/backend/internal/testhelpers"
	"github.com/forkful/backend/internal/types"
)

// Exercises the JSONB dietary filter and conflict-clause upserts against real
// PostgreSQL, where the SQL dialect differs from the SQLite used in unit tests.
func TestRecipeLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupPostgresDB(t)
	svc := service.NewRecipeService(db)
	authorID := testhelpers.CreateTestUser(t, db, "author@example.com", "author")
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, authorID, types.RecipeInput{
		Title:        "Vegan Buddha Bowl",
		Servings:     2,
		Difficulty:   types.DifficultyEasy,
		Cuisine:      "Mediterranean",
		DietaryTypes: []string{"Vegan", "Vegetarian", "Dairy-Free"},
		Ingredients: []types.Ingredient{
			{Name: "Quinoa", Amount: 100, Unit: "g"},
			{Name: "Kale", Amount: 100, Unit: "g"},
		},
		Instructions: []string{"Assemble the bowl."},
	})
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, authorID, types.RecipeInput{
		Title:        "Classic Beef Bourguignon",
		Servings:     6,
		Difficulty:   types.DifficultyHard,
		Cuisine:      "French",
		Ingredients:  []types.Ingredient{{Name: "Beef chuck", Amount: 1.5, Unit: "kg"}},
		Instructions: []string{"Braise."},
	})
	require.NoError(t, err)

	t.Run("jsonb dietary containment", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, &types.RecipeFilter{
			DietaryTypes: []string{"Vegan", "Dairy-Free"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Vegan Buddha Bowl", got[0].Title)
	})

	t.Run("rating upsert on conflict", func(t *testing.T) {
		rater := testhelpers.CreateTestUser(t, db, "rater@example.com", "rater")
		require.NoError(t, svc.RateRecipe(ctx, id, rater, 3, "ok"))
		require.NoError(t, svc.RateRecipe(ctx, id, rater, 5, "grew on me"))

		got, err := svc.GetRecipe(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Ratings, 1)
		assert.Equal(t, 5, got.Ratings[0].Value)
	})

	t.Run("save on conflict does nothing", func(t *testing.T) {
		saver := testhelpers.CreateTestUser(t, db, "saver@example.com", "saver")
		require.NoError(t, svc.SetSaved(ctx, id, saver, true))
		require.NoError(t, svc.SetSaved(ctx, id, saver, true))

		got, err := svc.GetSavedRecipes(ctx, saver)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
