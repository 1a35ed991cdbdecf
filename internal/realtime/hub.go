// Package realtime implements the connection, presence and broadcast
// subsystem: a per-process hub tracking which users are connected and
// which channels they belong to, a router fanning events out to the
// right connections, and the per-connection session state machine.
package realtime

import (
	"log/slog"
	"sync"
)

// Hub is the owned aggregate of process-wide realtime state: the
// connection registry (userID -> live client), the channel membership
// index (userID -> channel set, snapshot taken at bind time) and the
// typing state (channelID -> users currently typing).
//
// All maps are guarded by a single RWMutex. Every operation is a short
// in-memory map access; storage calls and network writes never happen
// under the lock.
type Hub struct {
	mu sync.RWMutex

	// conns maps a user to its single live connection. A second bind for
	// the same user overwrites the entry; the displaced client is closed
	// by the session manager, not here.
	conns map[uint]*Client

	// membership maps a user to the channels it belonged to at bind
	// time. The snapshot is only refreshed on reconnect, so membership
	// changes made mid-session do not affect routing until then.
	membership map[uint]map[uint]struct{}

	// typing maps a channel to the users currently typing in it. There
	// is no server-side expiry; entries are removed by typing_stop
	// frames or on disconnect.
	typing map[uint]map[uint]struct{}

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		conns:      make(map[uint]*Client),
		membership: make(map[uint]map[uint]struct{}),
		typing:     make(map[uint]map[uint]struct{}),
		logger:     logger,
	}
}

// Bind registers client as the live connection for userID and returns
// the displaced client, if any. The caller decides what to do with the
// previous connection; Bind never closes it.
func (h *Hub) Bind(userID uint, client *Client) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.conns[userID]
	h.conns[userID] = client
	h.logger.Info("client bound", "userID", userID, "clientID", client.ID(), "superseded", prev != nil)
	return prev
}

// Unbind removes the registry entry for userID, but only if it still
// points at client. It reports whether the entry was removed, so a
// superseded connection's teardown never unbinds its successor. Safe to
// call for a client that never bound.
func (h *Hub) Unbind(userID uint, client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.conns[userID]
	if !ok || current != client {
		return false
	}
	delete(h.conns, userID)
	h.logger.Info("client unbound", "userID", userID, "clientID", client.ID())
	return true
}

// Lookup returns the live connection for userID, or nil
func (h *Hub) Lookup(userID uint) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[userID]
}

// OnlineUserIDs returns a snapshot of all currently bound user IDs
func (h *Hub) OnlineUserIDs() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	return ids
}

// SetMembership replaces the entire channel set for userID
func (h *Hub) SetMembership(userID uint, channelIDs []uint) {
	set := make(map[uint]struct{}, len(channelIDs))
	for _, id := range channelIDs {
		set[id] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.membership[userID] = set
}

// ClearMembership removes the membership set for userID
func (h *Hub) ClearMembership(userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.membership, userID)
}

// MembersOf returns the connected users whose membership snapshot
// includes channelID. Linear in the number of connected users, which is
// fine for a single-process registry.
func (h *Hub) MembersOf(channelID uint) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var members []uint
	for userID, channels := range h.membership {
		if _, ok := channels[channelID]; ok {
			members = append(members, userID)
		}
	}
	return members
}

// channelClients resolves the live connections for a channel's members,
// excluding excludeUserID (0 means no exclusion). Absent connections
// are skipped.
func (h *Hub) channelClients(channelID uint, excludeUserID uint) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	for userID, channels := range h.membership {
		if userID == excludeUserID {
			continue
		}
		if _, ok := channels[channelID]; !ok {
			continue
		}
		if c, ok := h.conns[userID]; ok {
			clients = append(clients, c)
		}
	}
	return clients
}

// allClients resolves every live connection except excludeUserID's
func (h *Hub) allClients(excludeUserID uint) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.conns))
	for userID, c := range h.conns {
		if userID == excludeUserID {
			continue
		}
		clients = append(clients, c)
	}
	return clients
}

// StartTyping records userID as typing in channelID and reports whether
// the entry was newly added
func (h *Hub) StartTyping(channelID, userID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	users, ok := h.typing[channelID]
	if !ok {
		users = make(map[uint]struct{})
		h.typing[channelID] = users
	}
	if _, exists := users[userID]; exists {
		return false
	}
	users[userID] = struct{}{}
	return true
}

// StopTyping removes userID from channelID's typing set and reports
// whether an entry was removed
func (h *Hub) StopTyping(channelID, userID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	users, ok := h.typing[channelID]
	if !ok {
		return false
	}
	if _, exists := users[userID]; !exists {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(h.typing, channelID)
	}
	return true
}

// ClearTyping removes userID from every channel's typing set and
// returns the channels it was typing in, so the caller can announce
// typing_stop on disconnect.
func (h *Hub) ClearTyping(userID uint) []uint {
	h.mu.Lock()
	defer h.mu.Unlock()

	var channels []uint
	for channelID, users := range h.typing {
		if _, ok := users[userID]; !ok {
			continue
		}
		delete(users, userID)
		if len(users) == 0 {
			delete(h.typing, channelID)
		}
		channels = append(channels, channelID)
	}
	return channels
}

// TypingUsers returns the users currently typing in channelID
func (h *Hub) TypingUsers(channelID uint) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := h.typing[channelID]
	ids := make([]uint, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	return ids
}
