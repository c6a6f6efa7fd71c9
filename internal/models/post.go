package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_posts_user_created,priority:1"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Body      string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_posts_user_created,priority:2"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	MaxPostBodyLength  = 5000
	MaxPostImageLength = 500
)

func (Post) TableName() string {
	return "posts"
}
