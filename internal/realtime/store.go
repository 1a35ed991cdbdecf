package realtime

import (
	"context"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
)

// ChatStore is the narrow persistence interface the realtime subsystem
// consumes. The service layer implements it over MySQL; tests supply an
// in-memory fake.
//
// IsChannelMember is the authorization check for every mutating frame;
// it always hits storage rather than the hub's possibly-stale
// membership snapshot (the snapshot is for routing only).
type ChatStore interface {
	IsChannelMember(ctx context.Context, channelID, userID uint) (bool, error)
	GetUserChannelIDs(ctx context.Context, userID uint) ([]uint, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	CreateMessage(ctx context.Context, senderID, channelID uint, content string, replyToID *uint) (*models.Message, error)
	GetMessage(ctx context.Context, messageID uint) (*models.Message, error)
	AddReaction(ctx context.Context, messageID, userID uint, emoji string) error
	RemoveReaction(ctx context.Context, messageID, userID uint, emoji string) error
}

// PresenceStore mirrors online/offline transitions into a shared store
// (Redis TTL keys plus a pub/sub announcement). Optional; a nil store
// disables the mirror.
type PresenceStore interface {
	SetOnline(ctx context.Context, userID uint) error
	SetOffline(ctx context.Context, userID uint) error
}

// EventPublisher mirrors persisted messages onto an external event bus
// (Kafka) for archival and analytics. Optional; failures never affect
// delivery to connected clients.
type EventPublisher interface {
	PublishMessage(msg *models.Message) error
}
