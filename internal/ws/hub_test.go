package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startHubServer accepts websocket clients into hub and keeps each one open
// until the client goes away.
func startHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		hub.Add(conn)
		defer hub.Remove(conn)
		for {
			if _, _, err := conn.Read(context.Background()); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Len() == n }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	// Arrange
	hub := NewHub(nil)
	srv := startHubServer(t, hub)
	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	// Act
	hub.Broadcast(context.Background(), []byte(`{"type":"DoorStateChanged"}`))

	// Assert
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, conn := range []*websocket.Conn{a, b} {
		typ, data, err := conn.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, websocket.MessageText, typ)
		assert.JSONEq(t, `{"type":"DoorStateChanged"}`, string(data))
	}
}

func TestHub_RemoveOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	srv := startHubServer(t, hub)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))

	waitForClients(t, hub, 0)
}

func TestHub_EmptyBroadcastIsNoop(t *testing.T) {
	hub := NewHub(nil)

	assert.NotPanics(t, func() { hub.Broadcast(context.Background(), []byte("x")) })
	assert.Equal(t, 0, hub.Len())
}
