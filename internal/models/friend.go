package models

import (
	"time"

	"github.com/mroshb/friends_api/pkg/utils"
	"gorm.io/gorm"
)

// Friend is a friend-request edge from UserID (requester) to FriendID
// (recipient). Status is NULL while pending and FriendStatusConfirmed once
// the recipient accepts.
type Friend struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      uint       `gorm:"not null;index"`
	Requester   User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendID    uint       `gorm:"not null;index"`
	Recipient   User       `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
	Status      *int       `gorm:"default:null"`
	ConfirmedAt *time.Time `gorm:"default:null"`

	// PairLow/PairHigh hold the ordered user ids; the unique index keeps a
	// single edge per unordered pair whichever side sent the request.
	PairLow  uint `gorm:"not null;index:idx_friend_pair,unique"`
	PairHigh uint `gorm:"not null;index:idx_friend_pair,unique"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const FriendStatusConfirmed = 1

// IsConfirmed reports whether the recipient accepted the request.
func (f *Friend) IsConfirmed() bool {
	return f != nil && f.Status != nil && *f.Status == FriendStatusConfirmed
}

// BeforeCreate fills the pair key from the direction fields.
func (f *Friend) BeforeCreate(tx *gorm.DB) error {
	if f.UserID == 0 || f.FriendID == 0 || f.UserID == f.FriendID {
		return gorm.ErrInvalidData
	}
	f.PairLow, f.PairHigh = utils.OrderedPair(f.UserID, f.FriendID)
	return nil
}

func (Friend) TableName() string {
	return "friends"
}
