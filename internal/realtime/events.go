package realtime

import (
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
)

// Outbound event types delivered to clients
const (
	EventOnlineUsers     = "online_users"
	EventUserOnline      = "user_online"
	EventUserOffline     = "user_offline"
	EventTypingStart     = "typing_start"
	EventTypingStop      = "typing_stop"
	EventNewMessage      = "new_message"
	EventMessageReaction = "message_reaction"
	EventError           = "error"
)

// Reaction actions carried by message_reaction events
const (
	ReactionAdd    = "add"
	ReactionRemove = "remove"
)

// Event is the outbound frame envelope. Events are immutable once
// constructed; ownership passes to the router for fan-out.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// TypingPayload is broadcast for typing_start / typing_stop events
type TypingPayload struct {
	UserID    uint   `json:"userId"`
	ChannelID uint   `json:"channelId"`
	FirstName string `json:"firstName,omitempty"`
}

// ReactionEventPayload is broadcast for message_reaction events
type ReactionEventPayload struct {
	MessageID uint   `json:"messageId"`
	Emoji     string `json:"emoji"`
	UserID    uint   `json:"userId"`
	Action    string `json:"action"`
}

// ErrorPayload is sent to a single client on a malformed frame
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewOnlineUsersEvent(userIDs []uint) *Event {
	return &Event{Type: EventOnlineUsers, Payload: userIDs}
}

func NewUserOnlineEvent(userID uint) *Event {
	return &Event{Type: EventUserOnline, Payload: userID}
}

func NewUserOfflineEvent(userID uint) *Event {
	return &Event{Type: EventUserOffline, Payload: userID}
}

func NewTypingEvent(eventType string, userID, channelID uint, firstName string) *Event {
	return &Event{Type: eventType, Payload: TypingPayload{
		UserID:    userID,
		ChannelID: channelID,
		FirstName: firstName,
	}}
}

func NewMessageEvent(msg *models.Message) *Event {
	return &Event{Type: EventNewMessage, Payload: models.NewMessageResponse(msg)}
}

func NewReactionEvent(messageID uint, emoji string, userID uint, action string) *Event {
	return &Event{Type: EventMessageReaction, Payload: ReactionEventPayload{
		MessageID: messageID,
		Emoji:     emoji,
		UserID:    userID,
		Action:    action,
	}}
}

func NewErrorEvent(code, message string) *Event {
	return &Event{Type: EventError, Payload: ErrorPayload{Code: code, Message: message}}
}
