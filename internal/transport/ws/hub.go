package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	UserID() string
	MeetingID() int64
}

// Hub — подписки соединений на встречи. Реализует domain.Publisher.
type Hub struct {
	mu       sync.RWMutex
	meetings map[int64]map[Conn]struct{} // meetingID -> set of connections
}

func NewHub() *Hub {
	return &Hub{meetings: make(map[int64]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.meetings[c.MeetingID()]
	if !ok {
		set = make(map[Conn]struct{})
		h.meetings[c.MeetingID()] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.meetings[c.MeetingID()]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.meetings, c.MeetingID())
		}
	}
}

func (h *Hub) Count(meetingID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.meetings[meetingID])
}

func (h *Hub) Broadcast(meetingID int64, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.meetings[meetingID] {
		if err := c.Send(msg); err != nil { // best-effort
			slog.Debug("ws send failed", "meeting_id", meetingID, "user", c.UserID(), "err", err)
		}
	}
}

func (h *Hub) Publish(_ context.Context, evt domain.Event) {
	h.Broadcast(evt.MeetingID, Message{Type: string(evt.Type), Payload: evt.Payload})
}
