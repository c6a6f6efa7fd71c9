package services

import (
	"context"

	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/internal/security"
	"github.com/mroshb/friends_api/pkg/errors"
)

type PostService struct {
	repo       *repositories.PostRepository
	userRepo   *repositories.UserRepository
	friendRepo *repositories.FriendRepository
}

func NewPostService(repo *repositories.PostRepository, userRepo *repositories.UserRepository, friendRepo *repositories.FriendRepository) *PostService {
	return &PostService{
		repo:       repo,
		userRepo:   userRepo,
		friendRepo: friendRepo,
	}
}

// ListPosts returns the viewer's own posts, newest first. Friends' posts are
// not merged in.
func (s *PostService) ListPosts(ctx context.Context, viewerID uint) ([]models.Post, error) {
	return s.repo.GetPostsByUser(ctx, viewerID)
}

// ListUserPosts returns ownerID's posts when the viewer is the owner or a
// confirmed friend, and an empty list otherwise.
func (s *PostService) ListUserPosts(ctx context.Context, viewerID, ownerID uint) ([]models.Post, error) {
	if _, err := s.userRepo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if viewerID != ownerID {
		friends, err := s.friendRepo.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return []models.Post{}, nil
		}
	}

	return s.repo.GetPostsByUser(ctx, ownerID)
}

func (s *PostService) CreatePost(ctx context.Context, authorID uint, body, image string) (*models.Post, error) {
	body = security.SanitizeText(body, models.MaxPostBodyLength)
	image = security.SanitizeString(image, models.MaxPostImageLength)

	meta := map[string][]string{}
	if body == "" {
		meta["body"] = []string{"The body field is required."}
	}
	if !security.ValidateImageURL(image) {
		meta["image"] = []string{"The image must be a valid http(s) URL."}
	}
	if len(meta) > 0 {
		return nil, errors.Validation(meta)
	}

	post := &models.Post{
		UserID: authorID,
		Body:   body,
		Image:  image,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
