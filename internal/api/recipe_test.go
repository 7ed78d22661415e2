package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/service"
	"github.com/forkful/backend/internal/testhelpers"
	"github.com/forkful/backend/internal/types"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, "test-jwt-secret")

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(auth).RegisterRoutes(v1)
	NewRecipeHandler(service.NewRecipeService(db), auth, nil, nil).RegisterRoutes(v1)
	NewProfileHandler(service.NewProfileService(db), nil, auth).RegisterRoutes(v1)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name:     "Test " + username,
		Email:    email,
		Username: username,
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createRecipe(t *testing.T, router *gin.Engine, token string, input types.RecipeInput) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func pizzaInput() types.RecipeInput {
	return types.RecipeInput{
		Title:        "Margherita Pizza",
		Description:  "Classic Italian pizza",
		ImageURL:     "https://example.com/pizza.jpg",
		PrepTime:     20,
		CookTime:     15,
		Servings:     4,
		Difficulty:   types.DifficultyEasy,
		Cuisine:      "Italian",
		DietaryTypes: []string{"Vegetarian"},
		Ingredients: []types.Ingredient{
			{Name: "Pizza dough", Amount: 1, Unit: "ball"},
		},
		Instructions: []string{"Bake."},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("requires authentication", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", "", pizzaInput())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates and serves the recipe", func(t *testing.T) {
		token := registerUser(t, router, "author@example.com", "author")
		id := createRecipe(t, router, token, pizzaInput())

		w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Margherita Pizza", body["title"])
		assert.Equal(t, "https://example.com/pizza.jpg", body["imageUrl"])
		assert.Equal(t, float64(20), body["prepTime"])
		assert.Equal(t, []interface{}{"Vegetarian"}, body["dietaryTypes"])
		// Never rated, so the field is omitted entirely.
		assert.NotContains(t, body, "averageRating")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		token := registerUser(t, router, "author2@example.com", "author2")
		input := pizzaInput()
		input.Title = ""
		w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, input)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRecipeEndpointErrors(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/00000000-0000-0000-0000-000000000001", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "author@example.com", "author")

	createRecipe(t, router, token, pizzaInput())
	curry := pizzaInput()
	curry.Title = "Thai Green Curry"
	curry.Cuisine = "Thai"
	curry.Difficulty = types.DifficultyMedium
	curry.DietaryTypes = []string{"Gluten-Free"}
	createRecipe(t, router, token, curry)

	var resp struct {
		Recipes []types.Recipe `json:"recipes"`
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?cuisine=Thai&difficulty=medium", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Thai Green Curry", resp.Recipes[0].Title)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?dietary=Gluten-Free", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Thai Green Curry", resp.Recipes[0].Title)
}

func TestUpdateRecipeOwnership(t *testing.T) {
	router, _ := setupTestRouter(t)
	owner := registerUser(t, router, "owner@example.com", "owner")
	intruder := registerUser(t, router, "intruder@example.com", "intruder")

	id := createRecipe(t, router, owner, pizzaInput())
	patch := map[string]string{"title": "Hijacked"}

	w := doJSON(t, router, http.MethodPut, "/api/v1/recipes/"+id, intruder, patch)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/recipes/"+id, owner, patch)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Hijacked", body["title"])

	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateRecipeEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	author := registerUser(t, router, "author@example.com", "author")
	rater := registerUser(t, router, "rater@example.com", "rater")

	id := createRecipe(t, router, author, pizzaInput())
	path := fmt.Sprintf("/api/v1/recipes/%s/rating", id)

	t.Run("bounds are enforced at the binding", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, path, rater, types.RateRequest{Value: 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, http.MethodPost, path, rater, types.RateRequest{Value: 6})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid rating shows up in the view", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, path, rater, types.RateRequest{Value: 5, Comment: "Perfect!"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var recipe types.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
		require.Len(t, recipe.Ratings, 1)
		assert.Equal(t, 5, recipe.Ratings[0].Value)
		require.NotNil(t, recipe.AverageRating)
		assert.Equal(t, 5.0, *recipe.AverageRating)
	})
}

func TestSaveRecipeEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	author := registerUser(t, router, "author@example.com", "author")
	saver := registerUser(t, router, "saver@example.com", "saver")

	id := createRecipe(t, router, author, pizzaInput())
	savePath := fmt.Sprintf("/api/v1/recipes/%s/save", id)
	statusPath := fmt.Sprintf("/api/v1/recipes/%s/saved", id)

	w := doJSON(t, router, http.MethodGet, statusPath, saver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved": false}`, w.Body.String())

	w = doJSON(t, router, http.MethodPost, savePath, saver, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, statusPath, saver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved": true}`, w.Body.String())

	var resp struct {
		Recipes []types.Recipe `json:"recipes"`
	}
	w = doJSON(t, router, http.MethodGet, "/api/v1/saved", saver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Margherita Pizza", resp.Recipes[0].Title)

	w = doJSON(t, router, http.MethodDelete, savePath, saver, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/saved", saver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)
}
