package repositories

import (
	"context"

	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/pkg/errors"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create post")
	}
	return nil
}

// GetPostsByUser returns a user's posts, newest first.
func (r *PostRepository) GetPostsByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get posts")
	}

	return posts, nil
}
