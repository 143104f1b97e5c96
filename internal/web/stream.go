package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nmea-ng/internal/gps"
	"nmea-ng/internal/nmea"
)

// SentenceMessage is the JSON form of one decoded sentence, shared by the
// stream and /api/decode.
type SentenceMessage struct {
	Type        nmea.SentenceType `json:"type"`
	Talker      string            `json:"talker"`
	ReceivedUTC string            `json:"received_utc,omitempty"`
	Raw         string            `json:"raw"`
	Data        nmea.Sentence     `json:"data"`
}

// Hub fans decoded sentences out to websocket subscribers. Slow subscribers
// lose messages instead of stalling the reader.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan []byte
	nextID int
	sent   uint64
	drops  uint64
}

const (
	streamBuffer     = 64
	streamWriteLimit = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan []byte)}
}

func (h *Hub) Subscribe(buffer int) (int, <-chan []byte) {
	if buffer <= 0 {
		buffer = streamBuffer
	}
	ch := make(chan []byte, buffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Handle implements gps.Sink.
func (h *Hub) Handle(l gps.Line) {
	if l.Sentence == nil {
		return
	}
	h.mu.RLock()
	n := len(h.subs)
	h.mu.RUnlock()
	if n == 0 {
		return
	}

	b, err := json.Marshal(SentenceMessage{
		Type:        l.Sentence.Type(),
		Talker:      l.Frame.Talker(),
		ReceivedUTC: l.At.UTC().Format(time.RFC3339Nano),
		Raw:         string(l.Raw),
		Data:        l.Sentence,
	})
	if err != nil {
		return
	}
	h.publish(b)
}

func (h *Hub) publish(b []byte) {
	// Holding the read lock keeps Unsubscribe from closing a channel mid-send.
	h.mu.RLock()
	var sent, drops uint64
	for _, ch := range h.subs {
		select {
		case ch <- b:
			sent++
		default:
			drops++
		}
	}
	h.mu.RUnlock()

	h.mu.Lock()
	h.sent += sent
	h.drops += drops
	h.mu.Unlock()
}

type HubSnapshot struct {
	Subscribers int    `json:"subscribers"`
	Sent        uint64 `json:"sent"`
	Dropped     uint64 `json:"dropped"`
}

func (h *Hub) Snapshot() HubSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HubSnapshot{Subscribers: len(h.subs), Sent: h.sent, Dropped: h.drops}
}

// ServeHTTP upgrades to a websocket and streams one text message per
// sentence until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return
	}
	defer conn.Close()

	id, ch := h.Subscribe(streamBuffer)
	defer h.Unsubscribe(id)

	// The stream is one-way; reading only detects the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web stream closed remote=%s: %v", r.RemoteAddr, err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case b, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteLimit))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
	}
}
