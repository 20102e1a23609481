package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	clientA = "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f"
	clientB = "0b9e8d7c-6a5f-4e3d-9c2b-1a0f9e8d7c6b"
)

func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()

	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWebSocket(w, r, r.URL.Query().Get("client_id"))
	}))
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return hub, server, cancel
}

func dial(t *testing.T, hub *Hub, server *httptest.Server, clientID string) *websocket.Conn {
	t.Helper()

	before := hub.Connected(clientID)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?client_id=" + clientID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Connected(clientID) == before+1 },
		time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub, server, _ := startHub(t)

	conn := dial(t, hub, server, clientA)
	assert.Equal(t, 1, hub.Connected(clientA))

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Connected(clientA) == 0 },
		time.Second, 10*time.Millisecond)
}

func TestHub_Broadcast(t *testing.T) {
	hub, server, _ := startHub(t)
	conn := dial(t, hub, server, clientA)

	hub.Broadcast(clientA, &Message{
		Type:    "test",
		Channel: "test_channel",
		Data:    map[string]any{"test": "data"},
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var received Message
	require.NoError(t, conn.ReadJSON(&received))

	assert.Equal(t, "test", received.Type)
	assert.Equal(t, "test_channel", received.Channel)
	assert.Equal(t, clientA, received.ClientID)
}

func TestHub_MultipleConnections(t *testing.T) {
	hub, server, _ := startHub(t)

	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conns = append(conns, dial(t, hub, server, clientA))
	}
	require.Equal(t, 3, hub.Connected(clientA))

	hub.Broadcast(clientA, &Message{Type: "broadcast", Channel: "test"})

	var wg sync.WaitGroup
	for i, conn := range conns {
		wg.Add(1)
		go func(idx int, c *websocket.Conn) {
			defer wg.Done()
			c.SetReadDeadline(time.Now().Add(time.Second))
			var received Message
			if assert.NoError(t, c.ReadJSON(&received), "connection %d", idx) {
				assert.Equal(t, "broadcast", received.Type, "connection %d", idx)
			}
		}(i, conn)
	}
	wg.Wait()
}

func TestHub_DifferentClients(t *testing.T) {
	hub, server, _ := startHub(t)
	connA := dial(t, hub, server, clientA)
	connB := dial(t, hub, server, clientB)

	hub.Broadcast(clientA, &Message{Type: "private", Channel: "test"})

	connA.SetReadDeadline(time.Now().Add(time.Second))
	var receivedA Message
	require.NoError(t, connA.ReadJSON(&receivedA))
	assert.Equal(t, "private", receivedA.Type)

	connB.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var receivedB Message
	assert.Error(t, connB.ReadJSON(&receivedB), "client B must not see client A's messages")
}

func TestHub_BroadcastChannelFull(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	hub.broadcast = make(chan *Message, 1)

	// Run is not started, so the buffer stays full.
	hub.broadcast <- &Message{Type: "fill"}
	hub.Broadcast(clientA, &Message{Type: "dropped"})

	msg := <-hub.broadcast
	assert.Equal(t, "fill", msg.Type)
	select {
	case msg := <-hub.broadcast:
		t.Fatalf("unexpected message %q", msg.Type)
	default:
	}
}

func TestHub_ShutdownClosesConnections(t *testing.T) {
	hub, server, cancel := startHub(t)
	conn := dial(t, hub, server, clientA)

	cancel()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should be closed after hub shutdown")
}
