package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */
// Message represents a persisted chat message in a channel
type Message struct {
	gorm.Model
	ChannelID uint   `gorm:"not null;index" json:"channelId"`
	SenderID  uint   `gorm:"not null;index" json:"senderId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	ReplyToID *uint  `json:"replyToId,omitempty"`

	Sender    User       `gorm:"foreignKey:SenderID" json:"sender"`
	Reactions []Reaction `gorm:"foreignKey:MessageID" json:"reactions"`
}

// Reaction represents an emoji reaction on a message, unique per
// (message, user, emoji) triple
type Reaction struct {
	gorm.Model
	MessageID uint   `gorm:"not null;uniqueIndex:idx_msg_user_emoji" json:"messageId"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_msg_user_emoji" json:"userId"`
	Emoji     string `gorm:"not null;type:varchar(32);uniqueIndex:idx_msg_user_emoji" json:"emoji"`
}

/** -------------------- DTOs -------------------- */
// Request
type CreateMessageRequest struct {
	ChannelID uint   `json:"channelId" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ReplyToID *uint  `json:"replyToId"`
}

// Response
type ReactionResponse struct {
	MessageID uint   `json:"messageId"`
	UserID    uint   `json:"userId"`
	Emoji     string `json:"emoji"`
}

type MessageResponse struct {
	ID        uint               `json:"id"`
	ChannelID uint               `json:"channelId"`
	SenderID  uint               `json:"senderId"`
	Content   string             `json:"content"`
	ReplyToID *uint              `json:"replyToId,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	Sender    UserResponse       `json:"sender"`
	Reactions []ReactionResponse `json:"reactions"`
}

// NewMessageResponse converts a Message entity (with preloaded sender and
// reactions) to the shape delivered to clients
func NewMessageResponse(m *Message) MessageResponse {
	reactions := make([]ReactionResponse, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		reactions = append(reactions, ReactionResponse{
			MessageID: r.MessageID,
			UserID:    r.UserID,
			Emoji:     r.Emoji,
		})
	}
	return MessageResponse{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		ReplyToID: m.ReplyToID,
		CreatedAt: m.CreatedAt,
		Sender:    NewUserResponse(&m.Sender),
		Reactions: reactions,
	}
}
