package realtime

import (
	"testing"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRouteToChannelDeliversToConnectedMembers(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())
	c3 := NewClient(nil, testLogger())
	hub.Bind(1, c1)
	hub.Bind(2, c2)
	hub.Bind(3, c3)
	hub.SetMembership(1, []uint{100})
	hub.SetMembership(2, []uint{100})
	hub.SetMembership(3, []uint{200})

	router.RouteToChannel(100, NewUserOnlineEvent(1), 0)

	assert.Equal(t, EventUserOnline, recv(t, c1).Type)
	assert.Equal(t, EventUserOnline, recv(t, c2).Type)
	assert.Empty(t, c3.send, "non-member must not receive the event")
}

func TestRouteToChannelExcludesSender(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())
	hub.Bind(1, c1)
	hub.Bind(2, c2)
	hub.SetMembership(1, []uint{100})
	hub.SetMembership(2, []uint{100})

	router.RouteToChannel(100, NewTypingEvent(EventTypingStart, 1, 100, "Alice"), 1)

	assert.Equal(t, EventTypingStart, recv(t, c2).Type)
	assert.Empty(t, c1.send, "excluded user must not receive the event")
}

func TestRouteToChannelSkipsAbsentConnections(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	hub.Bind(1, c1)
	hub.SetMembership(1, []uint{100})
	// User 2 has a membership snapshot but no live connection
	hub.SetMembership(2, []uint{100})

	router.RouteToChannel(100, NewUserOnlineEvent(3), 0)

	assert.Equal(t, EventUserOnline, recv(t, c1).Type)
}

func TestRouteToChannelSkipsClosedClient(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())
	hub.Bind(1, c1)
	hub.Bind(2, c2)
	hub.SetMembership(1, []uint{100})
	hub.SetMembership(2, []uint{100})

	c2.close()
	router.RouteToChannel(100, NewUserOnlineEvent(3), 0)

	assert.Equal(t, EventUserOnline, recv(t, c1).Type)
	assert.False(t, c2.TrySend([]byte("x")), "closed client accepts nothing")
}

func TestRelayPresenceBroadcastsRemoteTransitions(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	hub.Bind(1, c1)

	updates := make(chan *models.StatusUpdate)
	done := make(chan struct{})
	go func() {
		defer close(done)
		router.RelayPresence(updates)
	}()

	updates <- &models.StatusUpdate{UserID: 9, Status: models.PresenceOnline}
	assert.Equal(t, EventUserOnline, recv(t, c1).Type)

	updates <- &models.StatusUpdate{UserID: 9, Status: models.PresenceOffline}
	assert.Equal(t, EventUserOffline, recv(t, c1).Type)

	close(updates)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop when the update stream closed")
	}
}

func TestRouteToAll(t *testing.T) {
	hub := NewHub(testLogger())
	router := NewEventRouter(hub, testLogger())

	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())
	c3 := NewClient(nil, testLogger())
	hub.Bind(1, c1)
	hub.Bind(2, c2)
	hub.Bind(3, c3)

	router.RouteToAll(NewUserOfflineEvent(4), 2)

	assert.Equal(t, EventUserOffline, recv(t, c1).Type)
	assert.Equal(t, EventUserOffline, recv(t, c3).Type)
	assert.Empty(t, c2.send, "excluded user must not receive the event")
}
