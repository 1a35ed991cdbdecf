package realtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// wireEvent decodes the outbound envelope without committing to a
// payload shape
type wireEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// recv pops one queued frame off a client's send buffer
func recv(t *testing.T, c *Client) wireEvent {
	t.Helper()
	select {
	case data := <-c.send:
		var ev wireEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no frame queued for client")
		return wireEvent{}
	}
}

func TestHubBindReturnsDisplaced(t *testing.T) {
	hub := NewHub(testLogger())
	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())

	assert.Nil(t, hub.Bind(1, c1))
	assert.Same(t, c1, hub.Lookup(1))

	// Second bind for the same user overwrites and hands back the old
	// connection
	prev := hub.Bind(1, c2)
	assert.Same(t, c1, prev)
	assert.Same(t, c2, hub.Lookup(1))
}

func TestHubUnbindOnlyRemovesOwnEntry(t *testing.T) {
	hub := NewHub(testLogger())
	c1 := NewClient(nil, testLogger())
	c2 := NewClient(nil, testLogger())

	hub.Bind(1, c1)
	hub.Bind(1, c2)

	// The displaced connection's unbind must not evict its successor
	assert.False(t, hub.Unbind(1, c1))
	assert.Same(t, c2, hub.Lookup(1))

	assert.True(t, hub.Unbind(1, c2))
	assert.Nil(t, hub.Lookup(1))

	// Unbinding a user that never bound is a no-op
	assert.False(t, hub.Unbind(2, c1))
}

func TestHubOnlineUserIDs(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Bind(1, NewClient(nil, testLogger()))
	hub.Bind(2, NewClient(nil, testLogger()))
	hub.Bind(3, NewClient(nil, testLogger()))

	assert.ElementsMatch(t, []uint{1, 2, 3}, hub.OnlineUserIDs())
}

func TestHubMembership(t *testing.T) {
	hub := NewHub(testLogger())

	hub.SetMembership(1, []uint{10, 20})
	hub.SetMembership(2, []uint{20})
	hub.SetMembership(3, []uint{30})

	assert.ElementsMatch(t, []uint{1, 2}, hub.MembersOf(20))
	assert.ElementsMatch(t, []uint{1}, hub.MembersOf(10))
	assert.Empty(t, hub.MembersOf(99))

	// SetMembership replaces the whole set
	hub.SetMembership(1, []uint{30})
	assert.ElementsMatch(t, []uint{2}, hub.MembersOf(20))
	assert.ElementsMatch(t, []uint{1, 3}, hub.MembersOf(30))

	hub.ClearMembership(1)
	assert.ElementsMatch(t, []uint{3}, hub.MembersOf(30))
}

func TestHubTyping(t *testing.T) {
	hub := NewHub(testLogger())

	assert.True(t, hub.StartTyping(10, 1))
	assert.False(t, hub.StartTyping(10, 1), "duplicate typing_start is not newly added")
	assert.True(t, hub.StartTyping(10, 2))
	assert.True(t, hub.StartTyping(20, 1))

	assert.ElementsMatch(t, []uint{1, 2}, hub.TypingUsers(10))

	assert.True(t, hub.StopTyping(10, 2))
	assert.False(t, hub.StopTyping(10, 2))
	assert.ElementsMatch(t, []uint{1}, hub.TypingUsers(10))
}

func TestHubClearTypingReturnsAffectedChannels(t *testing.T) {
	hub := NewHub(testLogger())
	hub.StartTyping(10, 1)
	hub.StartTyping(20, 1)
	hub.StartTyping(20, 2)

	channels := hub.ClearTyping(1)
	assert.ElementsMatch(t, []uint{10, 20}, channels)

	assert.Empty(t, hub.TypingUsers(10))
	assert.ElementsMatch(t, []uint{2}, hub.TypingUsers(20))

	assert.Empty(t, hub.ClearTyping(1), "second clear finds nothing")
}
