package models

import (
	"gorm.io/gorm"
)

// Friend status constants
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusBlocked  = "blocked"
)

type Friend struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_friend" json:"userId"`
	FriendID uint   `gorm:"not null;uniqueIndex:idx_user_friend" json:"friendId"`
	Status   string `gorm:"not null;type:varchar(20)" json:"status"`

	User       User `gorm:"foreignKey:UserID" json:"-"`
	FriendUser User `gorm:"foreignKey:FriendID" json:"-"`
}

/** -------------------- DTOs -------------------- */

type FriendRequest struct {
	FriendID uint `json:"friendId" binding:"required"`
}

// FriendResponse represents the friend data returned to the client
type FriendResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}
