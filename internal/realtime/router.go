package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
)

func marshalEvent(ev *Event) ([]byte, error) {
	return json.Marshal(ev)
}

// EventRouter resolves the recipient set for an event and delivers it
// to each live connection. Delivery is best-effort and at-most-once:
// connections that are absent, closed or backed up are skipped, never
// retried or queued.
type EventRouter struct {
	hub    *Hub
	logger *slog.Logger
}

func NewEventRouter(hub *Hub, logger *slog.Logger) *EventRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventRouter{hub: hub, logger: logger}
}

// RouteToChannel delivers ev to every connected member of channelID,
// excluding excludeUserID (0 = nobody). Recipients are resolved from
// the membership snapshot under a read lock; the writes themselves
// happen outside it.
func (r *EventRouter) RouteToChannel(channelID uint, ev *Event, excludeUserID uint) {
	data, err := marshalEvent(ev)
	if err != nil {
		r.logger.Error("failed to marshal event", "type", ev.Type, "channelID", channelID, "error", err)
		return
	}

	targets := r.hub.channelClients(channelID, excludeUserID)
	delivered := 0
	for _, c := range targets {
		if c.TrySend(data) {
			delivered++
		}
	}
	r.logger.Debug("routed event to channel",
		"type", ev.Type, "channelID", channelID, "targets", len(targets), "delivered", delivered)
}

// RouteToAll delivers ev to every bound connection except
// excludeUserID's. Used for global presence announcements.
func (r *EventRouter) RouteToAll(ev *Event, excludeUserID uint) {
	data, err := marshalEvent(ev)
	if err != nil {
		r.logger.Error("failed to marshal event", "type", ev.Type, "error", err)
		return
	}

	targets := r.hub.allClients(excludeUserID)
	delivered := 0
	for _, c := range targets {
		if c.TrySend(data) {
			delivered++
		}
	}
	r.logger.Debug("routed event to all",
		"type", ev.Type, "targets", len(targets), "delivered", delivered)
}

// RelayPresence broadcasts presence transitions announced by other
// server instances to the local clients. Updates originating from this
// process are already filtered out at the subscription. Runs until
// updates is closed.
func (r *EventRouter) RelayPresence(updates <-chan *models.StatusUpdate) {
	for update := range updates {
		switch update.Status {
		case models.PresenceOnline:
			r.RouteToAll(NewUserOnlineEvent(update.UserID), update.UserID)
		case models.PresenceOffline:
			r.RouteToAll(NewUserOfflineEvent(update.UserID), update.UserID)
		default:
			r.logger.Debug("unknown presence status ignored", "userID", update.UserID, "status", update.Status)
		}
	}
}
