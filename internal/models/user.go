package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */
// User represents the user entity
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"` // Username for the user
	FirstName string `json:"firstName,omitempty"`                  // Display name shown in typing indicators
	Email     string `gorm:"uniqueIndex;not null" json:"email"`    // Unique email for the user
	Password  string `json:"-"`                                    // Password is hashed and not returned in responses
	Avatar    string `json:"avatar,omitempty"`

	Channels []*Channel `gorm:"many2many:channel_members" json:"channels"`
}

/** -------------------- DTOs -------------------- */
// Request
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	FirstName string `json:"firstName" binding:"omitempty,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Response
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Avatar    string    `json:"avatar,omitempty"`
}

// NewUserResponse converts a User entity to its response shape
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Avatar:    u.Avatar,
	}
}

// LoginResponse represents the response for a successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Update user request
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,max=50"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Avatar    *string `json:"avatar,omitempty"`
}
