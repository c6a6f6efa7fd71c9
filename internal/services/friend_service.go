package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/mroshb/friends_api/internal/friendship"
	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/mroshb/friends_api/pkg/logger"
)

// Clock returns the current time; tests replace it to pin confirmed_at.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

type FriendService struct {
	repo     *repositories.FriendRepository
	userRepo *repositories.UserRepository
	now      Clock
}

func NewFriendService(repo *repositories.FriendRepository, userRepo *repositories.UserRepository, now Clock) *FriendService {
	if now == nil {
		now = SystemClock
	}
	return &FriendService{
		repo:     repo,
		userRepo: userRepo,
		now:      now,
	}
}

// SendRequest records a pending request from requesterID to targetID, or
// returns the edge the pair already has.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID uint) (*models.Friend, error) {
	if err := friendship.CheckTarget(requesterID, targetID); err != nil {
		return nil, selfRequestError()
	}

	exists, err := s.userRepo.UserExists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrUserNotFound()
	}

	existing, err := s.repo.FindBetween(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}

	create, err := friendship.CheckRequest(requesterID, targetID, existing)
	if err != nil {
		return nil, selfRequestError()
	}
	if !create {
		return existing, nil
	}

	edge, err := s.repo.CreatePending(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}

	logger.Info("Friend request sent", "friend_request_id", edge.ID, "user_id", requesterID, "friend_id", targetID)
	return edge, nil
}

// RespondToRequest lets the recipient accept a pending request from requesterID.
func (s *FriendService) RespondToRequest(ctx context.Context, recipientID, requesterID uint, status int) (*models.Friend, error) {
	if status != models.FriendStatusConfirmed {
		return nil, errors.Validation(map[string][]string{
			"status": {"The selected status is invalid."},
		})
	}

	edge, err := s.pendingFor(ctx, recipientID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := friendship.Confirm(edge, s.now()); err != nil {
		return nil, errors.ErrFriendRequestNotFound()
	}
	if err := s.repo.Confirm(ctx, edge); err != nil {
		return nil, err
	}

	logger.Info("Friend request confirmed", "friend_request_id", edge.ID, "user_id", requesterID, "friend_id", recipientID)
	return edge, nil
}

// IgnoreRequest lets the recipient delete a pending request from requesterID.
func (s *FriendService) IgnoreRequest(ctx context.Context, recipientID, requesterID uint) error {
	edge, err := s.pendingFor(ctx, recipientID, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePending(ctx, edge); err != nil {
		return err
	}

	logger.Info("Friend request ignored", "friend_request_id", edge.ID, "user_id", requesterID, "friend_id", recipientID)
	return nil
}

// ResolveFriendship returns the edge between viewer and profile owner in
// either direction, or nil.
func (s *FriendService) ResolveFriendship(ctx context.Context, viewerID, profileUserID uint) (*models.Friend, error) {
	if viewerID == profileUserID {
		return nil, nil
	}
	return s.repo.FindBetween(ctx, viewerID, profileUserID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.repo.GetFriends(ctx, userID)
}

func (s *FriendService) ListPendingRequests(ctx context.Context, userID uint) ([]models.Friend, error) {
	return s.repo.GetPendingRequests(ctx, userID)
}

func (s *FriendService) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	return s.repo.AreFriends(ctx, userA, userB)
}

func (s *FriendService) pendingFor(ctx context.Context, recipientID, requesterID uint) (*models.Friend, error) {
	edge, err := s.repo.FindPendingFor(ctx, recipientID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := friendship.CheckResponse(edge, recipientID); err != nil {
		if stderrors.Is(err, friendship.ErrRequestNotFound) {
			return nil, errors.ErrFriendRequestNotFound()
		}
		return nil, err
	}
	return edge, nil
}

func selfRequestError() *errors.AppError {
	return errors.Validation(map[string][]string{
		"friend_id": {"You cannot send a friend request to yourself."},
	})
}
