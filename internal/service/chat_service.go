package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
)

const defaultMaxMessageLength = 4000

type ChatService struct {
	chat     ChatRepository
	meetings MeetingRepository
	opts     Options

	demoHistory bool
	maxLength   int
}

func NewChatService(chat ChatRepository, meetings MeetingRepository, opts Options) *ChatService {
	return &ChatService{
		chat:        chat,
		meetings:    meetings,
		opts:        opts.withDefaults(),
		demoHistory: true,
		maxLength:   defaultMaxMessageLength,
	}
}

func (s *ChatService) SetDemoHistory(enabled bool) { s.demoHistory = enabled }

func (s *ChatService) SetMaxLength(n int) {
	if n > 0 {
		s.maxLength = n
	}
}

// SendMessage сохраняет сообщение. Время всегда проставляет сервер.
func (s *ChatService) SendMessage(ctx context.Context, meetingID int64, msg domain.ChatMessage) (*domain.ChatMessage, error) {
	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Type == "" {
		msg.Type = domain.MessageText
	}
	if err := validateStruct(msg); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(msg.Content) > s.maxLength {
		return nil, fmt.Errorf("%w: message too long", domain.ErrInvalidInput)
	}
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}
	if err := s.ensureDemo(ctx, meetingID); err != nil {
		return nil, err
	}

	msg.ID = 0
	msg.MeetingID = meetingID
	msg.Timestamp = s.opts.Now()
	msg.Demo = false
	if err := s.chat.Save(ctx, &msg); err != nil {
		return nil, fmt.Errorf("chat.Save: %w", err)
	}
	s.opts.Publisher.Publish(ctx, domain.Event{Type: domain.EventChat, MeetingID: meetingID, Payload: msg})
	return &msg, nil
}

// ListMessages отдаёт историю по возрастанию времени, включая демо-переписку.
// Демо сохраняется только для существующих встреч, для прочих id она
// подмешивается при чтении и в хранилище не попадает.
func (s *ChatService) ListMessages(ctx context.Context, meetingID int64) ([]domain.ChatMessage, error) {
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}
	if !s.demoHistory {
		return s.chat.List(ctx, meetingID)
	}

	_, err := s.meetings.Get(ctx, meetingID)
	switch {
	case err == nil:
		if err := s.ensureDemo(ctx, meetingID); err != nil {
			return nil, err
		}
		return s.chat.List(ctx, meetingID)
	case !errors.Is(err, domain.ErrMeetingNotFound):
		return nil, fmt.Errorf("meetings.Get: %w", err)
	}

	msgs, err := s.chat.List(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if lo.SomeBy(msgs, func(m domain.ChatMessage) bool { return m.Demo }) {
		return msgs, nil
	}
	msgs = append(msgs, domain.DemoMessages(meetingID, s.opts.Now())...)
	domain.SortMessages(msgs)
	return msgs, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, meetingID, messageID int64) (bool, error) {
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return false, err
	}
	if err := s.chat.Delete(ctx, meetingID, messageID); err != nil {
		return false, err
	}
	s.opts.Publisher.Publish(ctx, domain.Event{
		Type:      domain.EventChatDeleted,
		MeetingID: meetingID,
		Payload:   map[string]int64{"id": messageID},
	})
	return true, nil
}

func (s *ChatService) ensureDemo(ctx context.Context, meetingID int64) error {
	if !s.demoHistory {
		return nil
	}
	if _, err := s.chat.SeedOnce(ctx, meetingID, domain.DemoMessages(meetingID, s.opts.Now())); err != nil {
		return fmt.Errorf("chat.SeedOnce: %w", err)
	}
	return nil
}
