package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSession(t *testing.T, store ChatStore) *session {
	t.Helper()
	hub := NewHub(testLogger())
	m := NewSessionManager(hub, NewEventRouter(hub, testLogger()), store, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &session{
		m:      m,
		client: NewClient(nil, testLogger()),
		state:  stateUnauthenticated,
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestMalformedFrameSendsErrorAndKeepsConnection(t *testing.T) {
	s := newTestSession(t, nil)

	assert.True(t, s.handleRaw([]byte("not json")))

	ev := recv(t, s.client)
	assert.Equal(t, EventError, ev.Type)
	assert.Equal(t, stateUnauthenticated, s.state)
}

func TestFramesBeforeAuthAreIgnored(t *testing.T) {
	s := newTestSession(t, nil)

	assert.True(t, s.handleRaw([]byte(`{"type":"typing_start","payload":{"channelId":100}}`)))
	assert.True(t, s.handleRaw([]byte(`{"type":"send_message","payload":{"channelId":100,"content":"hi"}}`)))

	assert.Empty(t, s.client.send, "pre-auth operations produce no response")
	assert.Equal(t, stateUnauthenticated, s.state)
}

func TestMalformedAuthPayloadKeepsConnection(t *testing.T) {
	s := newTestSession(t, nil)

	// Zero user ID is rejected without closing; the client may retry
	assert.True(t, s.handleRaw([]byte(`{"type":"auth","payload":{"userId":0}}`)))

	ev := recv(t, s.client)
	assert.Equal(t, EventError, ev.Type)
	assert.Equal(t, stateUnauthenticated, s.state)
}

func TestUnknownFrameTypeIgnoredWhenBound(t *testing.T) {
	s := newTestSession(t, nil)
	s.state = stateBound
	s.userID = 1

	assert.True(t, s.handleRaw([]byte(`{"type":"teleport","payload":{}}`)))
	assert.Empty(t, s.client.send)
}
