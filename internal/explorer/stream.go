package explorer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/metrics"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientBuffer is the number of queued messages a slow client may lag behind
// before further frames are dropped for it.
const clientBuffer = 16

// streamRequest is the incoming WebSocket message format.
type streamRequest struct {
	Type      string   `json:"type"` // "select" or "pick"
	Label     string   `json:"label,omitempty"`
	Index     int      `json:"index,omitempty"`
	DrawOrder []string `json:"draw_order,omitempty"`
}

// streamResponse is the outgoing WebSocket message format for replies.
type streamResponse struct {
	Type     string          `json:"type"` // "hello", "details" or "error"
	ClientID string          `json:"client_id,omitempty"`
	Content  string          `json:"content,omitempty"`
	Detail   *detailResponse `json:"detail,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans view changes out to websocket clients. It implements view.Notifier.
type Hub struct {
	atlas   *atlas.Atlas
	metrics *metrics.Registry
	journal *audit.Journal

	mu      sync.Mutex
	clients map[string]*client
	closed  bool
}

// NewHub creates a hub for a. The journal may be nil.
func NewHub(a *atlas.Atlas, reg *metrics.Registry, j *audit.Journal) *Hub {
	return &Hub{
		atlas:   a,
		metrics: reg,
		journal: j,
		clients: make(map[string]*client),
	}
}

// ViewChanged implements view.Notifier. It never blocks on a client.
func (h *Hub) ViewChanged(c view.Change) {
	msg, err := json.Marshal(frameMessage{Type: "frame", Frame: h.atlas.Frame(c.State)})
	if err != nil {
		log.Printf("explorer: encoding frame: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.clients {
		select {
		case cl.send <- msg:
		default:
			log.Printf("explorer: client %s is lagging, dropping frame", cl.id)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, cl := range h.clients {
		close(cl.send)
		delete(h.clients, id)
	}
	h.metrics.StreamClients.Set(0)
}

// ServeWS upgrades the request and streams frames until the client leaves.
// The current frame is sent first.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("explorer: websocket upgrade: %v", err)
		return
	}
	cl := &client{id: uuid.New().String(), conn: conn, send: make(chan []byte, clientBuffer)}
	if !h.add(cl) {
		conn.Close()
		return
	}
	go h.writeLoop(cl)
	h.readLoop(cl)
}

// add registers cl and queues its greeting and the current frame. Both happen
// under the hub lock so no view change can slip in between.
func (h *Hub) add(cl *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	hello, _ := json.Marshal(streamResponse{Type: "hello", ClientID: cl.id})
	cl.send <- hello
	if current, err := json.Marshal(frameMessage{Type: "frame", Frame: h.atlas.CurrentFrame()}); err == nil {
		cl.send <- current
	}
	h.clients[cl.id] = cl
	h.metrics.StreamClients.Inc()
	return true
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl.id]; !ok {
		return
	}
	delete(h.clients, cl.id)
	close(cl.send)
	h.metrics.StreamClients.Dec()
}

func (h *Hub) writeLoop(cl *client) {
	defer cl.conn.Close()
	for msg := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("explorer: websocket write: %v", err)
			return
		}
	}
	cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) readLoop(cl *client) {
	defer h.remove(cl)
	for {
		_, msg, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("explorer: websocket read: %v", err)
			}
			return
		}

		var req streamRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			h.reply(cl, streamResponse{Type: "error", Content: "invalid message format"})
			continue
		}

		switch req.Type {
		case "select":
			// The resulting frame reaches every client through ViewChanged.
			if err := h.atlas.Select(req.Label); err != nil {
				h.reply(cl, streamResponse{Type: "error", Content: err.Error()})
			}
		case "pick":
			h.handlePick(cl, req)
		default:
			h.reply(cl, streamResponse{Type: "error", Content: "unknown message type: " + req.Type})
		}
	}
}

func (h *Hub) handlePick(cl *client, req streamRequest) {
	d, err := pickDetail(context.Background(), h.atlas, h.metrics, h.journal, h.atlas.Current(), req.Index, req.DrawOrder)
	if err != nil {
		h.reply(cl, streamResponse{Type: "error", Content: err.Error(), Detail: &d})
		return
	}
	h.reply(cl, streamResponse{Type: "details", Detail: &d})
}

func (h *Hub) reply(cl *client, resp streamResponse) {
	msg, err := json.Marshal(resp)
	if err != nil {
		log.Printf("explorer: encoding reply: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl.id]; !ok {
		return
	}
	select {
	case cl.send <- msg:
	default:
		log.Printf("explorer: client %s is lagging, dropping reply", cl.id)
	}
}
