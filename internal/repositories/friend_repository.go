package repositories

import (
	"context"

	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/mroshb/friends_api/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// FindBetween returns the edge between two users in either direction, or nil.
func (r *FriendRepository) FindBetween(ctx context.Context, userA, userB uint) (*models.Friend, error) {
	low, high := utils.OrderedPair(userA, userB)

	var edge models.Friend
	result := r.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		First(&edge)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up friendship")
	}

	return &edge, nil
}

// CreatePending inserts a pending edge unless one already exists for the
// pair, and returns whichever edge the pair holds afterwards. The unique pair
// index makes concurrent calls converge on a single row.
func (r *FriendRepository) CreatePending(ctx context.Context, requesterID, recipientID uint) (*models.Friend, error) {
	edge := &models.Friend{
		UserID:   requesterID,
		FriendID: recipientID,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_low"}, {Name: "pair_high"}},
			DoNothing: true,
		}).
		Create(edge)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create friend request")
	}

	if result.RowsAffected == 1 && edge.ID != 0 {
		return edge, nil
	}

	existing, err := r.FindBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New(errors.ErrCodeInternalError, "friend request vanished after insert")
	}
	return existing, nil
}

// FindPendingFor returns the pending edge sent by requesterID to recipientID.
func (r *FriendRepository) FindPendingFor(ctx context.Context, recipientID, requesterID uint) (*models.Friend, error) {
	var edge models.Friend
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ? AND status IS NULL", requesterID, recipientID).
		First(&edge)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up friend request")
	}

	return &edge, nil
}

// Confirm marks a pending edge confirmed. The status guard keeps confirmed_at
// immutable when two accepts race.
func (r *FriendRepository) Confirm(ctx context.Context, edge *models.Friend) error {
	if edge.Status == nil || edge.ConfirmedAt == nil {
		return errors.New(errors.ErrCodeInternalError, "friend request has no confirmation to store")
	}

	result := r.db.WithContext(ctx).Model(&models.Friend{}).
		Where("id = ? AND status IS NULL", edge.ID).
		Updates(map[string]interface{}{
			"status":       *edge.Status,
			"confirmed_at": *edge.ConfirmedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to accept friend request")
	}

	if result.RowsAffected == 0 {
		return errors.ErrFriendRequestNotFound()
	}

	return nil
}

// DeletePending removes a pending edge.
func (r *FriendRepository) DeletePending(ctx context.Context, edge *models.Friend) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status IS NULL", edge.ID).
		Delete(&models.Friend{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete friend request")
	}

	if result.RowsAffected == 0 {
		return errors.ErrFriendRequestNotFound()
	}

	return nil
}

// GetFriends retrieves the confirmed friends of a user.
func (r *FriendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var friends []models.User

	err := r.db.WithContext(ctx).Table("users").
		Select("users.*").
		Joins("JOIN friends ON (friends.user_id = users.id OR friends.friend_id = users.id)").
		Where("(friends.user_id = ? OR friends.friend_id = ?) AND friends.status = ? AND users.id != ?",
			userID, userID, models.FriendStatusConfirmed, userID).
		Order("users.name").
		Find(&friends).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}

	return friends, nil
}

// GetPendingRequests retrieves pending requests addressed to a user, newest first.
func (r *FriendRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friend, error) {
	var requests []models.Friend

	err := r.db.WithContext(ctx).
		Where("friend_id = ? AND status IS NULL", userID).
		Preload("Requester").
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get pending requests")
	}

	return requests, nil
}

// AreFriends checks if two users hold a confirmed edge.
func (r *FriendRepository) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	low, high := utils.OrderedPair(userA, userB)

	var count int64
	result := r.db.WithContext(ctx).Model(&models.Friend{}).
		Where("pair_low = ? AND pair_high = ? AND status = ?", low, high, models.FriendStatusConfirmed).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check friendship")
	}

	return count > 0, nil
}
