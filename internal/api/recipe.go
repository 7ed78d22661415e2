package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/service"
	"github.com/forkful/backend/internal/types"
)

type RecipeHandler struct {
	recipes     service.IRecipeService
	authService middleware.TokenValidator
	images      *service.ImageService
	limiter     *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, authService middleware.TokenValidator, images *service.ImageService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		authService: authService,
		images:      images,
		limiter:     limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	mutation := []gin.HandlerFunc{auth}
	if h.limiter != nil {
		mutation = append(mutation, h.limiter.RateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", append(mutation, h.CreateRecipe)...)
		recipes.PUT("/:id", append(mutation, h.UpdateRecipe)...)
		recipes.DELETE("/:id", append(mutation, h.DeleteRecipe)...)
		recipes.POST("/:id/rating", auth, h.RateRecipe)
		recipes.POST("/:id/save", auth, h.SaveRecipe)
		recipes.DELETE("/:id/save", auth, h.UnsaveRecipe)
		recipes.GET("/:id/saved", auth, h.GetSavedStatus)
		recipes.POST("/:id/image", append(mutation, h.UploadRecipeImage)...)
	}
	router.GET("/saved", auth, h.ListSavedRecipes)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := &types.RecipeFilter{
		SearchQuery: c.Query("q"),
		Difficulty:  c.Query("difficulty"),
	}
	if cuisines := c.Query("cuisine"); cuisines != "" {
		filter.Cuisines = splitCSV(cuisines)
	}
	if dietary := c.Query("dietary"); dietary != "" {
		filter.DietaryTypes = splitCSV(dietary)
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := h.recipes.CreateRecipe(c.Request.Context(), userID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id) {
		return
	}

	var patch types.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id) {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipes.RateRecipe(c.Request.Context(), id, userID, req.Value, req.Comment); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe rated successfully"})
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	h.setSaved(c, true)
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	h.setSaved(c, false)
}

func (h *RecipeHandler) setSaved(c *gin.Context, want bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recipes.SetSaved(c.Request.Context(), id, userID, want); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": want})
}

func (h *RecipeHandler) GetSavedStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.recipes.IsSaved(c.Request.Context(), id, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *RecipeHandler) ListSavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.GetSavedRecipes(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id) {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	key := service.RecipeImageKey(id, header.Filename)
	url, err := h.images.Upload(c.Request.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, types.RecipePatch{ImageURL: &url})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// requireOwnership loads the recipe and rejects callers who are not its
// author. Writes the response itself on failure.
func (h *RecipeHandler) requireOwnership(c *gin.Context, id uuid.UUID) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return false
	}
	if recipe.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the recipe author"})
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return value.(uuid.UUID), true
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
