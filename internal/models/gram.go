package models

import (
	"time"

	"gorm.io/gorm"
)

// Gram is a message with an optional picture. UserID is set once on creation.
type Gram struct {
	gorm.Model
	Message    string    `gorm:"type:text;not null" json:"message"`
	Picture    *string   `json:"picture"`
	PictureKey *string   `json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Comments   []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

type GramForm struct {
	Message string `form:"message" json:"message" validate:"required,max=2000"`
}

type GramResponse struct {
	ID        uint               `json:"id"`
	Message   string             `json:"message"`
	Picture   *string            `json:"picture"`
	User      *UserResponse      `json:"user"`
	Comments  []*CommentResponse `json:"comments"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (gram *Gram) IsOwnedBy(userID uint) bool {
	return userID != 0 && gram.UserID == userID
}

func (gram *Gram) ToGramResponse() *GramResponse {
	comments := []*CommentResponse{}
	for i := range gram.Comments {
		comments = append(comments, gram.Comments[i].ToCommentResponse())
	}
	return &GramResponse{
		ID:        gram.ID,
		Message:   gram.Message,
		Picture:   gram.Picture,
		User:      gram.User.ToUserResponse(),
		Comments:  comments,
		CreatedAt: gram.CreatedAt,
		UpdatedAt: gram.UpdatedAt,
	}
}
