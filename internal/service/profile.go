package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return &profile, nil
}

// UpdateProfile applies the provided field diffs to a user's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Cuisines != nil {
		profile.Preferences.Cuisines = *req.Cuisines
	}
	if req.DietaryRestrictions != nil {
		profile.Preferences.DietaryRestrictions = *req.DietaryRestrictions
	}
	if req.SkillLevel != nil {
		profile.Preferences.SkillLevel = *req.SkillLevel
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, storeErr("update profile", err)
	}
	return profile, nil
}

// SetAvatarURL records a freshly uploaded avatar's URL on the profile.
func (s *ProfileService) SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", url)
	if result.Error != nil {
		return storeErr("set avatar url", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SavedRecipeIDs returns the ids of the recipes the user has bookmarked.
func (s *ProfileService) SavedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, storeErr("list saved recipe ids", err)
	}
	return ids, nil
}
