package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/forkful/backend/config"
)

// ImageService stores recipe images and avatars in object storage. Bytes pass
// through untouched; no processing happens here.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Upload writes the object and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

// RecipeImageKey builds the object key for a recipe image.
func RecipeImageKey(recipeID uuid.UUID, filename string) string {
	return fmt.Sprintf("recipes/%s%s", recipeID, path.Ext(filename))
}

// AvatarKey builds the object key for a user avatar.
func AvatarKey(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))
}
