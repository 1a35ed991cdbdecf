package realtime

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Session states
type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateBound
	stateClosed
)

// SessionManager owns the connection lifecycle: authenticate, register,
// advertise online, dispatch frames, unregister, advertise offline.
// One Serve call per accepted connection.
type SessionManager struct {
	hub      *Hub
	router   *EventRouter
	store    ChatStore
	presence PresenceStore  // optional
	events   EventPublisher // optional
	logger   *slog.Logger
}

func NewSessionManager(hub *Hub, router *EventRouter, store ChatStore, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		hub:    hub,
		router: router,
		store:  store,
		logger: logger,
	}
}

// WithPresence attaches a presence mirror (Redis)
func (m *SessionManager) WithPresence(p PresenceStore) *SessionManager {
	m.presence = p
	return m
}

// WithEventPublisher attaches a message archive publisher (Kafka)
func (m *SessionManager) WithEventPublisher(p EventPublisher) *SessionManager {
	m.events = p
	return m
}

// session is the per-connection state machine
type session struct {
	m        *SessionManager
	client   *Client
	identity Identity

	state     sessionState
	userID    uint
	firstName string

	ctx    context.Context
	cancel context.CancelFunc

	tornDown int32 // atomic; teardown runs at most once
}

// Serve runs a connection to completion: write pump, read loop, frame
// dispatch and teardown. identity is the transport-level session
// resolved from the upgrade request. Blocks until the connection
// closes.
func (m *SessionManager) Serve(conn *websocket.Conn, identity Identity) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		m:        m,
		client:   NewClient(conn, m.logger),
		identity: identity,
		state:    stateUnauthenticated,
		ctx:      ctx,
		cancel:   cancel,
	}

	go s.client.writePump()
	defer s.teardown()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	m.logger.Info("connection accepted", "clientID", s.client.ID(), "verified", identity.Status == IdentityVerified)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				m.logger.Error("read error", "clientID", s.client.ID(), "userID", s.userID, "error", err)
			} else {
				m.logger.Debug("connection closed", "clientID", s.client.ID(), "userID", s.userID, "error", err)
			}
			return
		}
		if !s.handleRaw(data) {
			return
		}
	}
}

// bind promotes the session to Bound: register the connection, snapshot
// channel membership, deliver the online-user snapshot and announce
// presence to everyone else.
func (s *session) bind(userID uint) {
	s.userID = userID
	s.client.setUserID(userID)
	s.state = stateBound

	if user, err := s.m.store.GetUser(s.ctx, userID); err == nil && user != nil {
		s.firstName = user.FirstName
	}

	// Supersede: a second authentication for the same user displaces the
	// first connection. The registry just overwrites; closing the old
	// handle is this caller's job.
	if prev := s.m.hub.Bind(userID, s.client); prev != nil {
		prev.CloseWithCode(CloseSuperseded, "superseded by newer connection")
	}

	channelIDs, err := s.m.store.GetUserChannelIDs(s.ctx, userID)
	if err != nil {
		// Bound with an empty routing set; the user can still be
		// authorized per-operation against storage.
		s.m.logger.Error("failed to load channel membership", "userID", userID, "error", err)
	}
	s.m.hub.SetMembership(userID, channelIDs)

	if s.m.presence != nil {
		if err := s.m.presence.SetOnline(s.ctx, userID); err != nil {
			s.m.logger.Error("failed to set presence online", "userID", userID, "error", err)
		}
	}

	s.client.SendEvent(NewOnlineUsersEvent(s.m.hub.OnlineUserIDs()))
	s.m.router.RouteToAll(NewUserOnlineEvent(userID), userID)

	s.m.logger.Info("session bound", "clientID", s.client.ID(), "userID", userID, "channels", len(channelIDs))
}

// teardown closes the session. Idempotent: the close handler may fire
// after an auth-failure close already ran it. A session that never
// bound makes no presence announcements, and a superseded session
// (whose registry entry now belongs to a newer connection) only tears
// down its own handle.
func (s *session) teardown() {
	if !atomic.CompareAndSwapInt32(&s.tornDown, 0, 1) {
		return
	}
	defer s.cancel()

	s.client.close()
	s.client.conn.Close()

	if s.state != stateBound {
		return
	}
	s.state = stateClosed

	if !s.m.hub.Unbind(s.userID, s.client) {
		// A newer connection for this user owns the binding; presence
		// and membership are its responsibility now.
		return
	}

	typingChannels := s.m.hub.ClearTyping(s.userID)
	s.m.hub.ClearMembership(s.userID)

	for _, channelID := range typingChannels {
		s.m.router.RouteToChannel(channelID, NewTypingEvent(EventTypingStop, s.userID, channelID, s.firstName), s.userID)
	}

	if s.m.presence != nil {
		if err := s.m.presence.SetOffline(context.Background(), s.userID); err != nil {
			s.m.logger.Error("failed to set presence offline", "userID", s.userID, "error", err)
		}
	}

	s.m.router.RouteToAll(NewUserOfflineEvent(s.userID), s.userID)
	s.m.logger.Info("session closed", "clientID", s.client.ID(), "userID", s.userID)
}
