package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConnPair upgrades a loopback connection and returns both ends
func newConnPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-conns:
	case <-time.After(time.Second):
		t.Fatal("no server-side connection")
	}
	t.Cleanup(func() { server.Close() })
	return server, client
}

// CloseWithCode runs on foreign goroutines (supersede, auth failures)
// while the write pump is still draining events, so it must stay safe
// against concurrent writes.
func TestCloseWithCodeDuringActiveWrites(t *testing.T) {
	serverConn, clientConn := newConnPair(t)
	c := NewClient(serverConn, testLogger())
	go c.writePump()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		data := []byte(`{"type":"user_online","payload":1}`)
		for i := 0; i < 10000; i++ {
			if !c.TrySend(data) && c.isClosed() {
				return
			}
		}
	}()

	c.CloseWithCode(CloseSuperseded, "superseded by newer connection")
	wg.Wait()

	// The peer drains whatever was already on the wire, then sees the
	// close code
	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < 20000; i++ {
		_, _, err := clientConn.ReadMessage()
		if err == nil {
			continue
		}
		var closeErr *websocket.CloseError
		require.ErrorAs(t, err, &closeErr)
		assert.Equal(t, CloseSuperseded, closeErr.Code)
		break
	}

	assert.False(t, c.TrySend([]byte("x")), "closed client accepts nothing")
}

func TestCloseWithCodeIdempotent(t *testing.T) {
	serverConn, clientConn := newConnPair(t)
	c := NewClient(serverConn, testLogger())
	go c.writePump()

	c.CloseWithCode(CloseAuthMismatch, "claimed identity does not match session")
	c.CloseWithCode(CloseAuthMismatch, "claimed identity does not match session")

	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := clientConn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, CloseAuthMismatch, closeErr.Code)
}
