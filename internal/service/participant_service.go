package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type ParticipantService struct {
	participants ParticipantRepository
	opts         Options
}

func NewParticipantService(participants ParticipantRepository, opts Options) *ParticipantService {
	return &ParticipantService{participants: participants, opts: opts.withDefaults()}
}

// AddParticipant добавляет участника и возвращает полный состав встречи.
// Существование встречи не проверяется, повторный вход не отсекается.
func (s *ParticipantService) AddParticipant(ctx context.Context, meetingID int64, p domain.Participant) ([]domain.Participant, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}

	p.MeetingID = meetingID
	p.JoinedAt = s.opts.Now()
	roster, err := s.participants.Add(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("participants.Add: %w", err)
	}
	s.opts.Publisher.Publish(ctx, domain.Event{Type: domain.EventParticipantJoined, MeetingID: meetingID, Payload: p})
	return roster, nil
}

// RemoveParticipant идемпотентен: отсутствие участника не ошибка.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, meetingID int64, participantID string) ([]domain.Participant, error) {
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}
	roster, removed, err := s.participants.Remove(ctx, meetingID, participantID)
	if err != nil {
		return nil, fmt.Errorf("participants.Remove: %w", err)
	}
	if removed {
		s.opts.Publisher.Publish(ctx, domain.Event{
			Type:      domain.EventParticipantLeft,
			MeetingID: meetingID,
			Payload:   map[string]string{"id": participantID},
		})
	}
	return roster, nil
}

func (s *ParticipantService) ListParticipants(ctx context.Context, meetingID int64) ([]domain.Participant, error) {
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}
	return s.participants.List(ctx, meetingID)
}

func (s *ParticipantService) UpdateParticipant(ctx context.Context, meetingID int64, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if err := delay(ctx, s.opts.Latency.Member); err != nil {
		return nil, err
	}
	p, err := s.participants.Update(ctx, meetingID, participantID, patch)
	if err != nil {
		return nil, err
	}
	s.opts.Publisher.Publish(ctx, domain.Event{Type: domain.EventParticipantUpdated, MeetingID: meetingID, Payload: p})
	return p, nil
}
