package model

import (
	"time"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	AvatarURL *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
