package models

import (
	"gorm.io/gorm"
)

// User represents a user in the application
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

func (user *User) ToUserResponse() *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}
}
