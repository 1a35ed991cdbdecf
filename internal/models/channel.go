package models

import (
	"time"

	"gorm.io/gorm"
)

// Channel type constants
const (
	ChannelTypeDirect = "direct"
	ChannelTypeGroup  = "group"
)

// Channel represents a direct-message or group conversation
type Channel struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	OwnerID uint   `gorm:"not null" json:"ownerId"`
	Type    string `gorm:"not null;type:varchar(20);check:type IN ('direct', 'group')" json:"type"`

	Members []*User `gorm:"many2many:channel_members" json:"members"`
}

/** -------------------- DTOs -------------------- */

type CreateChannelRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Type      string `json:"type" binding:"required,oneof=direct group"`
	MemberIDs []uint `json:"memberIds"`
}

type UpdateChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

type ChannelResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	OwnerID uint   `json:"ownerId"`
}

type ChannelDetailResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"createdAt"`
	OwnerID   uint           `json:"ownerId"`
	Members   []UserResponse `json:"members"`
}

// NewChannelResponse converts a Channel entity to its list shape
func NewChannelResponse(c *Channel) ChannelResponse {
	return ChannelResponse{
		ID:      c.ID,
		Name:    c.Name,
		Type:    c.Type,
		OwnerID: c.OwnerID,
	}
}

// NewChannelDetailResponse converts a Channel entity with preloaded members
func NewChannelDetailResponse(c *Channel) ChannelDetailResponse {
	members := make([]UserResponse, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, NewUserResponse(m))
	}
	return ChannelDetailResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		OwnerID:   c.OwnerID,
		Members:   members,
	}
}
