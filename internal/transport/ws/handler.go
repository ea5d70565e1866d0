package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"beetacademy/internal/pkg/logger"
	"beetacademy/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub           *Hub
	authSvc       *service.AuthService
	submissionSvc *service.SubmissionService
	feedbackSvc   *service.FeedbackService
	log           *logger.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, submissionSvc *service.SubmissionService, feedbackSvc *service.FeedbackService, log *logger.Logger) *Handler {
	return &Handler{
		hub:           hub,
		authSvc:       authSvc,
		submissionSvc: submissionSvc,
		feedbackSvc:   feedbackSvc,
		log:           log.With("component", "ws-handler"),
	}
}

// WatchSubmission handles GET /v1/ws/submissions/{id}. The submission is
// fetched before the socket joins the hub, so watchers only ever exist for
// known ids.
func (h *Handler) WatchSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.authSvc.ValidateTraineeToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	sub, err := h.submissionSvc.Get(r.Context(), claims.TraineeID, id)
	if err != nil {
		http.Error(w, "failed to load submission", http.StatusInternalServerError)
		return
	}
	if sub == nil {
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn := &Connection{
		SubmissionID: id,
		TraineeID:    claims.TraineeID,
		Send:         make(chan []byte, 256),
		Hub:          h.hub,
	}
	h.hub.Register(conn)

	// Initial snapshot so a watcher that connects after evaluation still sees
	// the result.
	snapshot, _ := json.Marshal(h.feedbackSvc.View(sub))
	if data, err := json.Marshal(&Message{Type: MsgFeedbackSnapshot, Payload: snapshot}); err == nil {
		conn.Send <- data
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", "error", err)
			}
			break
		}
		// Watchers are read-only; incoming frames are ignored.
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
