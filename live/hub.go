// Package live pushes ledger updates to websocket subscribers grouped in rooms.
package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EventTeamPointsRecorded        = "TEAM_POINTS_RECORDED"
	EventPlayerPerformanceRecorded = "PLAYER_PERFORMANCE_RECORDED"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize = 256
)

// Message is the envelope written to subscribers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// SeriesRoom names the room that carries updates for one series.
func SeriesRoom(seriesID int) string {
	return "series_" + strconv.Itoa(seriesID)
}

// Subscriber is one connected websocket client.
type Subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string

	mu     sync.Mutex
	closed bool
}

func NewSubscriber(hub *Hub, conn *websocket.Conn, room string) *Subscriber {
	return &Subscriber{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		room: room,
	}
}

func (s *Subscriber) Room() string { return s.room }

// enqueue hands a frame to the write pump without blocking the hub.
func (s *Subscriber) enqueue(frame []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.send)
		s.closed = true
	}
}

// Hub owns the room membership. Run must be started before clients register.
type Hub struct {
	register   chan *Subscriber
	unregister chan *Subscriber
	done       chan struct{}
	stopOnce   sync.Once

	mu    sync.RWMutex
	rooms map[string]map[*Subscriber]struct{}

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Subscriber]struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[sub.room]; !ok {
				h.rooms[sub.room] = make(map[*Subscriber]struct{})
			}
			h.rooms[sub.room][sub] = struct{}{}
			size := len(h.rooms[sub.room])
			h.mu.Unlock()
			h.logger.Debug("subscriber joined", slog.String("room", sub.room), slog.Int("subscribers", size))

		case sub := <-h.unregister:
			h.remove(sub)

		case <-h.done:
			h.mu.Lock()
			for room, subs := range h.rooms {
				for sub := range subs {
					sub.close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every subscriber and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(sub *Subscriber) {
	select {
	case h.register <- sub:
	case <-h.done:
		sub.close()
	}
}

func (h *Hub) Unregister(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[sub.room]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	sub.close()
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.rooms, sub.room)
	}
	h.logger.Debug("subscriber left", slog.String("room", sub.room), slog.Int("subscribers", len(subs)))
}

// RoomSize reports how many subscribers a room currently has.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom serializes message once and queues it for every subscriber
// of room. Slow subscribers whose buffer is full miss the frame.
func (h *Hub) BroadcastToRoom(room string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.rooms[room]
	if !ok {
		return
	}

	frame, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to encode live message", slog.String("room", room), slog.Any("error", err))
		return
	}

	for sub := range subs {
		if !sub.enqueue(frame) {
			h.logger.Warn("dropped live message for slow subscriber", slog.String("room", room))
		}
	}
}

// ReadPump drains the connection so control frames are processed. Inbound
// messages are ignored.
func (s *Subscriber) ReadPump() {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Warn("websocket closed unexpectedly", slog.String("room", s.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (s *Subscriber) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.hub.logger.Debug("websocket write failed", slog.String("room", s.room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
