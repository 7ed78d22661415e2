package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

// RecipeService handles recipe reads and multi-step recipe writes. Every
// multi-table write runs inside a single transaction so a failure partway
// cannot leave a recipe with a partial ingredient set.
type RecipeService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db:       db,
		validate: validator.New(),
	}
}

func (s *RecipeService) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Ratings").Preload("IngredientLinks.Ingredient")
}

// ListRecipes returns recipes matching the filter, newest first. A nil filter
// returns everything. An empty result is a valid empty slice, not an error.
func (s *RecipeService) ListRecipes(ctx context.Context, filter *types.RecipeFilter) ([]types.Recipe, error) {
	query := s.withAssociations(s.db.WithContext(ctx).Model(&models.Recipe{})).
		Order("created_at DESC")

	if filter != nil {
		if len(filter.Cuisines) > 0 {
			query = query.Where("cuisine IN ?", filter.Cuisines)
		}
		if filter.Difficulty != "" && filter.Difficulty != types.DifficultyAll {
			query = query.Where("difficulty = ?", filter.Difficulty)
		}
		// Containment: every requested type must appear in the recipe's
		// dietary_types array. Matching is against the JSON-encoded element,
		// exact case.
		for _, dt := range filter.DietaryTypes {
			element, err := json.Marshal(dt)
			if err != nil {
				return nil, &ValidationError{Err: err}
			}
			pattern := "%" + string(element) + "%"
			if s.db.Dialector.Name() == "postgres" {
				query = query.Where("dietary_types::text LIKE ?", pattern)
			} else {
				query = query.Where("dietary_types LIKE ?", pattern)
			}
		}
		if q := strings.TrimSpace(filter.SearchQuery); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	var rows []models.Recipe
	if err := query.Find(&rows).Error; err != nil {
		return nil, storeErr("list recipes", err)
	}

	views := make([]types.Recipe, len(rows))
	for i := range rows {
		views[i] = RecipeView(rows[i])
	}
	return views, nil
}

// GetRecipe retrieves a recipe by ID. A missing recipe is ErrRecipeNotFound,
// distinct from store failures.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	var row models.Recipe
	err := s.withAssociations(s.db.WithContext(ctx)).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, storeErr("get recipe", err)
	}
	view := RecipeView(row)
	return &view, nil
}

// CreateRecipe inserts the recipe row and its ingredient links as one unit.
// Ingredients are resolved by exact name, creating missing ones; any linkage
// failure rolls the whole creation back.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, input types.RecipeInput) (uuid.UUID, error) {
	if err := s.validate.Struct(input); err != nil {
		return uuid.Nil, &ValidationError{Err: err}
	}

	row := RecipeRow(input)
	row.AuthorID = authorID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return linkIngredients(tx, row.ID, input.Ingredients)
	})
	if err != nil {
		return uuid.Nil, storeErr("create recipe", err)
	}
	return row.ID, nil
}

// UpdateRecipe applies the provided field diffs. A non-nil ingredient list
// fully replaces the recipe's links: delete-all-by-recipe, then re-link.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch types.RecipePatch) (*types.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Recipe
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}

		updates := recipeUpdates(patch)
		if len(updates) > 0 {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := linkIngredients(tx, id, *patch.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, storeErr("update recipe", err)
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe's ingredient links, then its ratings, then
// the recipe row, in that order. Orphaned Ingredient rows and saved_recipes
// rows are left behind; the saved-recipes read path filters dangling ones.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Recipe
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecipeNotFound
	}
	if err != nil {
		return storeErr("delete recipe", err)
	}
	return nil
}

// RateRecipe upserts on the (recipe, user) natural key: a prior rating is
// overwritten in place, otherwise a new row is inserted. The value's 1..5
// range is a convention enforced at the HTTP binding, not here.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int, comment string) error {
	rating := models.Rating{
		RecipeID: recipeID,
		UserID:   userID,
		Value:    value,
		Comment:  comment,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "comment", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return storeErr("rate recipe", err)
	}
	return nil
}

// SetSaved moves the recipe's saved state for the user to want. Both
// directions are idempotent: saving an already-saved recipe and unsaving an
// already-unsaved one succeed without effect.
func (s *RecipeService) SetSaved(ctx context.Context, recipeID, userID uuid.UUID, want bool) error {
	if want {
		saved := models.SavedRecipe{UserID: userID, RecipeID: recipeID}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).Create(&saved).Error
		if err != nil {
			return storeErr("save recipe", err)
		}
		return nil
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{}).Error
	if err != nil {
		return storeErr("unsave recipe", err)
	}
	return nil
}

// IsSaved reports whether the user has bookmarked the recipe.
func (s *RecipeService) IsSaved(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, storeErr("check saved recipe", err)
	}
	return count > 0, nil
}

// GetSavedRecipes returns the user's bookmarked recipes, most recently saved
// first. The inner join drops saved_recipes rows whose recipe no longer
// exists, so bookmarks dangling after a recipe delete are filtered, not an
// error.
func (s *RecipeService) GetSavedRecipes(ctx context.Context, userID uuid.UUID) ([]types.Recipe, error) {
	var rows []models.Recipe
	err := s.withAssociations(s.db.WithContext(ctx).Model(&models.Recipe{})).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("list saved recipes", err)
	}

	views := make([]types.Recipe, len(rows))
	for i := range rows {
		views[i] = RecipeView(rows[i])
	}
	return views, nil
}

// linkIngredients resolves each ingredient by exact name, creating missing
// ones, and inserts the link rows. Runs inside the caller's transaction.
func linkIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []types.Ingredient) error {
	for _, ing := range ingredients {
		ingredientID, err := resolveIngredient(tx, ing.Name)
		if err != nil {
			return err
		}
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Amount:       ing.Amount,
			Unit:         ing.Unit,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// resolveIngredient returns the id for the exact name, inserting a new row if
// none exists. The insert is ON CONFLICT DO NOTHING against the unique name
// index followed by a re-select, so two callers introducing the same new name
// converge on one row instead of racing a lookup-then-insert pair.
func resolveIngredient(tx *gorm.DB, name string) (uuid.UUID, error) {
	ing := models.Ingredient{Name: name}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&ing).Error; err != nil {
		return uuid.Nil, err
	}

	var row models.Ingredient
	if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

// recipeUpdates builds the column map for the provided diffs only.
func recipeUpdates(patch types.RecipePatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.PrepTime != nil {
		updates["prep_time"] = *patch.PrepTime
	}
	if patch.CookTime != nil {
		updates["cook_time"] = *patch.CookTime
	}
	if patch.Servings != nil {
		updates["servings"] = *patch.Servings
	}
	if patch.Difficulty != nil {
		updates["difficulty"] = *patch.Difficulty
	}
	if patch.Cuisine != nil {
		updates["cuisine"] = *patch.Cuisine
	}
	if patch.DietaryTypes != nil {
		updates["dietary_types"] = models.JSONBStringArray(*patch.DietaryTypes)
	}
	if patch.Instructions != nil {
		updates["instructions"] = models.JSONBStringArray(*patch.Instructions)
	}
	return updates
}
