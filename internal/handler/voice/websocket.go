package voice

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	voiceservice "github.com/gospia/gospia/backend/internal/service/voice"
)

// WebSocketHandler pushes synthesis lifecycle events to the client so
// the speaker button can reflect the isSpeaking state without polling.
type WebSocketHandler struct {
	voiceSvc *voiceservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the voice WebSocket handler.
func NewWebSocketHandler(voiceSvc *voiceservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		voiceSvc: voiceSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes registers the voice WebSocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// SpeakMessage asks the mock synthesizer to start an utterance.
type SpeakMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// wsConn serializes writes: the finished timer fires from another
// goroutine than the read loop. The timer is tracked so it can be
// stopped when the connection goes away before it fires.
type wsConn struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	closed   bool
	finished *time.Timer
}

func (c *wsConn) send(messageType string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	message := outgoingMessage{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := c.conn.WriteJSON(message); err != nil {
		log.Printf("[voice-ws] failed to write %s message: %v", messageType, err)
	}
}

// scheduleFinished arms the finished timer, replacing any pending one.
// No-op once the connection is closed.
func (c *wsConn) scheduleFinished(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.finished != nil {
		c.finished.Stop()
	}
	c.finished = time.AfterFunc(d, fn)
}

// close stops the pending finished timer and marks the connection so
// later sends are skipped instead of writing to a dead socket.
func (c *wsConn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.finished != nil {
		c.finished.Stop()
		c.finished = nil
	}
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice-ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	client := &wsConn{conn: conn}
	defer client.close()
	log.Printf("[voice-ws] connection opened from %s", r.RemoteAddr)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[voice-ws] unexpected close: %v", err)
			}
			return
		}

		switch inbound.Type {
		case "speak":
			h.handleSpeak(client, inbound.Data)
		case "cancel":
			cancelled := h.voiceSvc.Cancel()
			client.send("cancelled", map[string]bool{"wasSpeaking": cancelled})
		default:
			client.send("error", map[string]string{"error": "unknown message type: " + inbound.Type})
		}
	}
}

func (h *WebSocketHandler) handleSpeak(client *wsConn, data json.RawMessage) {
	var speak SpeakMessage
	if err := json.Unmarshal(data, &speak); err != nil {
		client.send("error", map[string]string{"error": "invalid speak payload"})
		return
	}

	utterance, err := h.voiceSvc.Speak(speak.Text)
	if err != nil {
		client.send("error", map[string]string{"error": err.Error()})
		return
	}

	client.send("started", utterance)

	// Emit finished after the estimated playback time unless the
	// utterance was cancelled or replaced in the meantime.
	duration := h.voiceSvc.EstimateDuration(speak.Text)
	client.scheduleFinished(duration, func() {
		current, speaking := h.voiceSvc.Speaking()
		if !speaking || current.ID != utterance.ID {
			return
		}
		h.voiceSvc.Finish(utterance.ID)
		client.send("finished", map[string]string{"id": utterance.ID})
	})
}
