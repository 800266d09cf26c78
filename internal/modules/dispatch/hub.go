package dispatch

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"hvacops/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	TopicJobs            = "jobs"
	TopicLeads           = "leads"
	TopicServiceRequests = "service_requests"
)

const (
	EventJobCreated              = "job.created"
	EventLeadCreated             = "lead.created"
	EventServiceRequestSubmitted = "service_request.submitted"
)

var allTopics = []string{TopicJobs, TopicLeads, TopicServiceRequests}

// Event is pushed to every client subscribed to Topic.
type Event struct {
	Type    string    `json:"type"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// clientMessage is what a board may send: subscribe/unsubscribe to a topic.
type clientMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

type client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

// Hub fans out domain events to connected dispatch boards. A user may hold
// several connections (one per open board).
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	metrics.DispatchClients.Inc()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		metrics.DispatchClients.Dec()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. The write pumps send a close frame.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		metrics.DispatchClients.Dec()
	}
}

// Publish never blocks: slow clients miss the event.
func (h *Hub) Publish(topic, eventType string, payload any) {
	data, err := json.Marshal(Event{
		Type:    eventType,
		Topic:   topic,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("dispatch: marshal event", "type", eventType, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.topics[topic] {
			continue
		}
		select {
		case c.send <- data:
		default:
			metrics.DispatchDropped.Inc()
		}
	}
}

// serve registers conn subscribed to every topic and blocks until the
// client disconnects.
func (h *Hub) serve(conn *websocket.Conn, userID int64) {
	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]bool, len(allTopics)),
	}
	for _, t := range allTopics {
		c.topics[t] = true
	}

	h.register(c)
	slog.Info("dispatch: client connected", "user_id", userID)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		slog.Info("dispatch: client disconnected", "user_id", c.userID)
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("dispatch: read failed", "user_id", c.userID, "err", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			c.topics[msg.Topic] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.topics, msg.Topic)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
