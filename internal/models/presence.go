package models

// Presence status constants stored in Redis
const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// StatusUpdate is published on the user_status Redis channel whenever a
// user's presence changes. Origin identifies the publishing process so
// subscribers can skip their own announcements.
type StatusUpdate struct {
	UserID uint   `json:"userId"`
	Status string `json:"status"`
	Origin string `json:"origin,omitempty"`
}
