package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"tapr/entity"
	"tapr/pkg/resp"
	"tapr/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	broadcastQueue = 64
)

// TipHub fans newly created tips out to dashboards watching a venue.
type TipHub struct {
	clients    map[string]map[*websocket.Conn]bool // venueID -> connections
	broadcast  chan TipEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	venues     *services.VenueService
	upgrader   websocket.Upgrader
	log        logrus.FieldLogger
}

type Subscription struct {
	Conn    *websocket.Conn
	VenueID string
}

// TipEvent is the JSON frame pushed to subscribers.
type TipEvent struct {
	Type    string      `json:"type"`
	VenueID string      `json:"venueId"`
	Tip     *entity.Tip `json:"tip"`
}

func NewTipHub(venues *services.VenueService, allowedOrigins []string, log logrus.FieldLogger) *TipHub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &TipHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan TipEvent, broadcastQueue),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		venues:     venues,
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Run serves register/unregister/broadcast until ctx is done.
func (h *TipHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.VenueID] == nil {
				h.clients[sub.VenueID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.VenueID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.VenueID][sub.Conn]; ok {
				delete(h.clients[sub.VenueID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.VenueID] {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.WithError(err).WithField("venue_id", ev.VenueID).Warn("ws write failed, dropping client")
					conn.Close()
					delete(h.clients[ev.VenueID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyTip queues the tip for broadcast. It never blocks the request that
// created the tip; when the queue is full the event is dropped.
func (h *TipHub) NotifyTip(venueID string, tip *entity.Tip) {
	select {
	case h.broadcast <- TipEvent{Type: "tip.created", VenueID: venueID, Tip: tip}:
	default:
		h.log.WithField("venue_id", venueID).Warn("tip feed queue full, event dropped")
	}
}

func (h *TipHub) ClientCount(venueID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[venueID])
}

// HandleWebSocket serves GET /ws/venues/:slug/tips.
func (h *TipHub) HandleWebSocket(c *gin.Context) {
	venue, err := h.venues.BySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, services.ErrVenueNotFound) {
		resp.NotFound(c, "Venue not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := Subscription{Conn: conn, VenueID: venue.ID}
	select {
	case h.register <- sub:
		go h.drain(sub)
	case <-h.done:
		conn.Close()
	}
}

// drain discards client frames and unregisters on close; the feed is
// server-to-client only.
func (h *TipHub) drain(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *TipHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for venueID, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, venueID)
	}
}
