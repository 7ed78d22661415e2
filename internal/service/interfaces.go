package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

// IRecipeService is the recipe surface consumed by the HTTP handlers.
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter *types.RecipeFilter) ([]types.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error)
	CreateRecipe(ctx context.Context, authorID uuid.UUID, input types.RecipeInput) (uuid.UUID, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch types.RecipePatch) (*types.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int, comment string) error
	SetSaved(ctx context.Context, recipeID, userID uuid.UUID, want bool) error
	IsSaved(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)
	GetSavedRecipes(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error)
}

// IProfileService is the profile surface consumed by the HTTP handlers.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error)
	SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) error
	SavedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
