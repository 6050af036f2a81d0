package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type MeetingService struct {
	meetings     MeetingRepository
	participants ParticipantRepository
	opts         Options

	demoFallback bool
	fallbackMu   sync.Mutex
}

func NewMeetingService(meetings MeetingRepository, participants ParticipantRepository, opts Options) *MeetingService {
	return &MeetingService{
		meetings:     meetings,
		participants: participants,
		opts:         opts.withDefaults(),
		demoFallback: true,
	}
}

// SetDemoFallback включает/выключает создание демо-встречи по неизвестному коду.
func (s *MeetingService) SetDemoFallback(enabled bool) {
	s.demoFallback = enabled
}

// CreateMeeting создаёт активную встречу со случайным кодом комнаты.
func (s *MeetingService) CreateMeeting(ctx context.Context, hostID string) (*domain.Meeting, error) {
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return nil, err
	}
	now := s.opts.Now()
	hostID = strings.TrimSpace(hostID)
	if hostID == "" {
		hostID = fmt.Sprintf("user-%d", now.UnixMilli())
	}

	m := &domain.Meeting{
		RoomCode:     domain.NewRoomCode(),
		HostID:       hostID,
		Participants: []string{},
		StartTime:    now,
		IsActive:     true,
	}
	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("meetings.Create: %w", err)
	}
	return m, nil
}

// FindMeetingByCode ищет строго: ErrMeetingNotFound, если кода нет.
func (s *MeetingService) FindMeetingByCode(ctx context.Context, code string) (*domain.Meeting, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return nil, err
	}
	return s.meetings.GetByCode(ctx, code)
}

// GetMeetingByCode ищет встречу по коду. Если её нет и включён демо-фолбэк,
// создаёт встречу с этим кодом и двумя демо-участниками (Demo=true).
func (s *MeetingService) GetMeetingByCode(ctx context.Context, code string) (*domain.Meeting, error) {
	m, err := s.FindMeetingByCode(ctx, code)
	if err == nil || !errors.Is(err, domain.ErrMeetingNotFound) || !s.demoFallback {
		return m, err
	}

	s.fallbackMu.Lock()
	defer s.fallbackMu.Unlock()

	// могли создать, пока ждали лок
	if m, err := s.meetings.GetByCode(ctx, code); !errors.Is(err, domain.ErrMeetingNotFound) {
		return m, err
	}
	return s.seedDemoMeeting(ctx, code)
}

func (s *MeetingService) seedDemoMeeting(ctx context.Context, code string) (*domain.Meeting, error) {
	now := s.opts.Now()
	m := &domain.Meeting{
		RoomCode:  code,
		HostID:    fmt.Sprintf("host-%d", now.UnixMilli()),
		StartTime: now,
		IsActive:  true,
		Demo:      true,
	}
	demo := domain.DemoParticipants(0, now)
	for _, p := range demo {
		m.Participants = append(m.Participants, p.ID)
	}
	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("meetings.Create: %w", err)
	}
	for _, p := range demo {
		p.MeetingID = m.ID
		if _, err := s.participants.Add(ctx, p); err != nil {
			// без отката следующий поиск вернул бы встречу с пустым составом
			if derr := s.meetings.Delete(context.WithoutCancel(ctx), m.ID); derr != nil {
				slog.ErrorContext(ctx, "demo meeting rollback", "meeting_id", m.ID, "err", derr)
			}
			return nil, fmt.Errorf("participants.Add: %w", err)
		}
	}

	slog.InfoContext(ctx, "demo meeting fabricated", "room_code", code, "meeting_id", m.ID)
	return m, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return nil, err
	}
	return s.meetings.List(ctx)
}

func (s *MeetingService) GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return nil, err
	}
	return s.meetings.Get(ctx, id)
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, id int64, patch domain.MeetingPatch) (*domain.Meeting, error) {
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return nil, err
	}
	m, err := s.meetings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.opts.Publisher.Publish(ctx, domain.Event{Type: domain.EventMeetingUpdated, MeetingID: id, Payload: m})
	return m, nil
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return false, err
	}
	if err := s.meetings.Delete(ctx, id); err != nil {
		return false, err
	}
	s.opts.Publisher.Publish(ctx, domain.Event{Type: domain.EventMeetingDeleted, MeetingID: id})
	return true, nil
}
