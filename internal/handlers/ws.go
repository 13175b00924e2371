package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub tracks websocket clients per user so task mutations can push a refresh
// hint to every open session of the owner. Other users never receive it.
type Hub struct {
	mu             sync.RWMutex
	clients        map[uint]map[*websocket.Conn]bool
	allowedOrigins []string
	logger         *slog.Logger
}

func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	return &Hub{
		clients:        make(map[uint]map[*websocket.Conn]bool),
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// BroadcastRefresh tells the user's open sessions to reload their task list.
// A nil hub is a no-op.
func (h *Hub) BroadcastRefresh(userID uint) {
	if h == nil {
		return
	}

	h.mu.RLock()
	clients, exists := h.clients[userID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	conns := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.logger.Warn("setting write deadline for broadcast failed", "error", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Task data updated",
		})

		if err != nil {
			h.logger.Warn("broadcasting refresh failed", "error", err)
			h.remove(userID, conn)
			conn.Close()
		}
	}
}

func (h *Hub) add(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if clients, exists := h.clients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) WebSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Warn("setting initial read deadline failed", "error", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(userID, conn)

	defer func() {
		h.remove(userID, conn)
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		h.logger.Warn("sending welcome message failed", "error", err)
		return
	}

	// Stop does not close the ticker channel, so the ping loop also watches
	// done; otherwise it would outlive the connection.
	done := make(chan struct{})
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go h.ping(conn, ticker, done)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read failed", "error", err, "user_id", userID)
			}
			break
		}
	}
}

func (h *Hub) ping(conn *websocket.Conn, ticker *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
