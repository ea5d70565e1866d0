package ws

import (
	"encoding/json"
	"sync"

	"beetacademy/internal/pkg/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgFeedbackSnapshot MessageType = "feedback_snapshot"
	MsgFeedbackUpdate   MessageType = "feedback_update"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket watchers keyed by submission id. A watcher is
// registered only after the submission id is known to exist, so no update can
// arrive before a listener does.
type Hub struct {
	watchers map[string]map[*Connection]bool // submissionID -> conns

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log *logger.Logger
}

// Connection represents one watcher of one submission.
type Connection struct {
	SubmissionID string
	TraineeID    string
	Send         chan []byte
	Hub          *Hub
}

// BroadcastMessage is a message for every watcher of a submission.
type BroadcastMessage struct {
	SubmissionID string
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log.With("component", "ws-hub"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.SubmissionID] == nil {
				h.watchers[conn.SubmissionID] = make(map[*Connection]bool)
			}
			h.watchers[conn.SubmissionID][conn] = true
			h.mu.Unlock()
			h.log.Debug("watcher connected", "submission", conn.SubmissionID, "trainee", conn.TraineeID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.SubmissionID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.watchers, conn.SubmissionID)
					}
					h.log.Debug("watcher disconnected", "submission", conn.SubmissionID, "trainee", conn.TraineeID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.SubmissionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a watcher
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a watcher
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSubmission sends a message to every watcher of a submission
// (implements service.Broadcaster).
func (h *Hub) BroadcastToSubmission(submissionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SubmissionID: submissionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
