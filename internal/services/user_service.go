package services

import (
	"context"
	"strings"

	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/internal/security"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/mroshb/friends_api/pkg/logger"
)

// Profile is a user as seen by a viewer.
type Profile struct {
	User       *models.User
	Friendship *models.Friend
}

type UserService struct {
	repo      *repositories.UserRepository
	friends   *FriendService
	jwtSecret string
}

func NewUserService(repo *repositories.UserRepository, friends *FriendService, jwtSecret string) *UserService {
	return &UserService{
		repo:      repo,
		friends:   friends,
		jwtSecret: jwtSecret,
	}
}

func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edge, err := s.friends.ResolveFriendship(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Friendship: edge}, nil
}

func (s *UserService) GetAuthUser(ctx context.Context, viewerID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeUserNotFound) {
			return nil, errors.New(errors.ErrCodeUnauthorized, "authenticated user no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// Register creates an account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = security.SanitizeText(name, models.MaxNameLength)
	email = strings.ToLower(strings.TrimSpace(email))

	meta := map[string][]string{}
	if name == "" {
		meta["name"] = []string{"The name field is required."}
	}
	if email == "" || !strings.Contains(email, "@") {
		meta["email"] = []string{"The email must be a valid email address."}
	}
	switch {
	case len(password) < security.MinPasswordLength:
		meta["password"] = []string{"The password must be at least 8 characters."}
	case len(password) > security.MaxPasswordLength:
		meta["password"] = []string{"The password may not be greater than 72 characters."}
	}
	if len(meta) > 0 {
		return nil, "", errors.Validation(meta)
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	user := &models.User{Name: name, Email: email, Password: hashed}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Authenticate checks credentials and returns the user with a fresh token.
// Unknown emails and wrong passwords fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrCodeUserNotFound) {
			return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
		}
		return nil, "", err
	}

	if !security.CheckPassword(user.Password, password) {
		return nil, "", errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := security.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate token")
	}
	return token, nil
}
