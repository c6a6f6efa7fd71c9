package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)

// BeforeSave normalizes the email and rejects rows that would break the
// unique login lookup.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Name == "" || len(u.Name) > MaxNameLength {
		return gorm.ErrInvalidData
	}
	if u.Email == "" || len(u.Email) > MaxEmailLength || !strings.Contains(u.Email, "@") {
		return gorm.ErrInvalidData
	}
	if u.Password == "" {
		return gorm.ErrInvalidData
	}

	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
