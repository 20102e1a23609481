package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// Client ids are unauthenticated browser namespaces; origins are
	// restricted by the CORS layer in front of the API, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans messages out to every open connection of a client.
type Hub struct {
	connections map[string]map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection

	broadcast chan *Message

	log *zap.Logger
	mu  sync.RWMutex
}

type Connection struct {
	ws       *websocket.Conn
	clientID string
	send     chan *Message
	hub      *Hub
}

type Message struct {
	ClientID string `json:"client_id,omitempty"`
	Type     string `json:"type"`
	Channel  string `json:"channel,omitempty"`
	Data     any    `json:"data"`
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		connections: make(map[string]map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *Message, 256),
		log:         log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Closing the sockets makes both pumps fail and unregister.
			h.mu.RLock()
			var conns []*Connection
			for _, m := range h.connections {
				for c := range m {
					conns = append(conns, c)
				}
			}
			h.mu.RUnlock()

			for _, c := range conns {
				_ = c.ws.Close()
			}
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.clientID] == nil {
				h.connections[conn.clientID] = make(map[*Connection]bool)
			}
			h.connections[conn.clientID][conn] = true
			h.mu.Unlock()
			h.log.Debug("websocket connected", zap.String("client_id", conn.clientID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if connections, ok := h.connections[conn.clientID]; ok {
				if _, exists := connections[conn]; exists {
					delete(connections, conn)
					close(conn.send)
					if len(connections) == 0 {
						delete(h.connections, conn.clientID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			if connections, ok := h.connections[message.ClientID]; ok {
				for conn := range connections {
					select {
					case conn.send <- message:
					default:
						// Slow consumer: drop it rather than block the hub.
						close(conn.send)
						delete(connections, conn)
					}
				}
				if len(connections) == 0 {
					delete(h.connections, message.ClientID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Connected reports how many sockets a client currently holds open.
func (h *Hub) Connected(clientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[clientID])
}

func (h *Hub) Broadcast(clientID string, message *Message) {
	message.ClientID = clientID
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("hub broadcast channel is full, dropping message",
			zap.String("client_id", clientID),
			zap.String("type", message.Type),
		)
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request, clientID string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("client_id", clientID), zap.Error(err))
		return
	}

	conn := &Connection{
		ws:       ws,
		clientID: clientID,
		send:     make(chan *Message, 256),
		hub:      h,
	}

	h.register <- conn

	go conn.writePump()
	go conn.readPump()
}

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10
)

func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.ws.Close()
	}()

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read failed", zap.String("client_id", c.clientID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteJSON(message); err != nil {
				c.hub.log.Warn("websocket write failed", zap.String("client_id", c.clientID), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
