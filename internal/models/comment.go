package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model
	Message string `gorm:"type:text;not null" json:"message"`
	GramID  uint   `gorm:"not null;index" json:"gram_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `json:"-"`
}

type CommentForm struct {
	Message string `form:"message" json:"message" validate:"required,max=1000"`
}

type CommentResponse struct {
	ID        uint          `json:"id"`
	GramID    uint          `json:"gram_id"`
	Message   string        `json:"message"`
	User      *UserResponse `json:"user"`
	CreatedAt time.Time     `json:"created_at"`
}

func (comment *Comment) ToCommentResponse() *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		GramID:    comment.GramID,
		Message:   comment.Message,
		User:      comment.User.ToUserResponse(),
		CreatedAt: comment.CreatedAt,
	}
}
