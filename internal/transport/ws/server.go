package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

type ParticipantSvc interface {
	ListParticipants(ctx context.Context, meetingID int64) ([]domain.Participant, error)
	RemoveParticipant(ctx context.Context, meetingID int64, participantID string) ([]domain.Participant, error)
}

type ChatSvc interface {
	ListMessages(ctx context.Context, meetingID int64) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, meetingID int64, msg domain.ChatMessage) (*domain.ChatMessage, error)
}

type Server struct {
	upgrader       websocket.Upgrader
	hub            *Hub
	participantSvc ParticipantSvc
	chatSvc        ChatSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, participants ParticipantSvc, chat ChatSvc, allowedOrigins []string) *Server {
	return &Server{
		hub:            hub,
		participantSvc: participants,
		chatSvc:        chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		pingEvery: 15 * time.Second,
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 || lo.Contains(allowed, "*") {
			return true
		}
		return lo.Contains(allowed, origin)
	}
}

// WS endpoint: GET /ws/meetings/{id}?user_id=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusBadRequest)
		return
	}
	meetingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || meetingID <= 0 {
		http.Error(w, "invalid meeting id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	ctx := r.Context()
	c := newWsConn(conn, meetingID, userID)
	s.hub.Add(c)

	if err := s.sendState(ctx, c); err != nil {
		slog.WarnContext(ctx, "ws send initial state failed", "meeting_id", meetingID, "user", userID, "err", err)
	}

	go s.writeLoop(ctx, c)
	s.readLoop(ctx, c)

	s.hub.Remove(c)

	// разрыв соединения = выход из встречи; RemoveParticipant сам разошлёт participant_left
	if _, err := s.participantSvc.RemoveParticipant(context.WithoutCancel(ctx), meetingID, userID); err != nil {
		slog.Debug("ws leave meeting failed", "meeting_id", meetingID, "user", userID, "err", err)
	}

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "meeting_id", meetingID, "user", userID, "err", err)
	}
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	parts, err := s.participantSvc.ListParticipants(ctx, c.meetingID)
	if err != nil {
		return err
	}
	msgs, err := s.chatSvc.ListMessages(ctx, c.meetingID)
	if err != nil {
		return err
	}

	return c.Send(Message{
		Type: TypeState,
		Payload: StatePayload{
			MeetingID:    c.meetingID,
			Participants: parts,
			Messages:     msgs,
		},
	})
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeChat:
			var p ChatPayload
			if decode(msg.Payload, &p) != nil {
				continue
			}
			s.handleChat(ctx, c, p)
		default:
			// ignore
		}
	}
}

func (s *Server) handleChat(ctx context.Context, c *wsConn, p ChatPayload) {
	// рассылку делает ChatService через Hub.Publish, отправителю только ACK
	saved, err := s.chatSvc.SendMessage(ctx, c.meetingID, domain.ChatMessage{
		SenderID:   c.userID,
		SenderName: p.SenderName,
		Content:    p.Message,
	})
	if err != nil {
		slog.WarnContext(ctx, "ws chat save failed", "meeting_id", c.meetingID, "user", c.userID, "err", err)
		_ = c.Send(Message{Type: TypeError, Payload: ErrorPayload{Error: err.Error()}})
		return
	}
	_ = c.Send(Message{Type: TypeChatAck, Payload: ChatAckPayload{MsgID: saved.ID}})
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload any, dst any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn      *websocket.Conn
	meetingID int64
	userID    string

	sendMu    sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

func newWsConn(c *websocket.Conn, meetingID int64, userID string) *wsConn {
	return &wsConn{
		conn:      c,
		meetingID: meetingID,
		userID:    userID,
		closed:    make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return c.conn.Close()
}

func (c *wsConn) UserID() string   { return c.userID }
func (c *wsConn) MeetingID() int64 { return c.meetingID }
