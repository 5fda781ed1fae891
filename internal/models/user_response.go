package models

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
