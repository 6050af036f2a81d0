package memory

import (
	"context"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
)

// MeetingRepository хранит встречи в памяти процесса. Счётчик ID живёт вместе с хранилищем.
type MeetingRepository struct {
	mu       sync.RWMutex
	meetings []domain.Meeting
	nextID   int64
}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{nextID: 1}
}

func (r *MeetingRepository) Create(_ context.Context, m *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.meetings = append(r.meetings, m.Clone())
	return nil
}

func (r *MeetingRepository) Get(_ context.Context, id int64) (*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, _, ok := lo.FindIndexOf(r.meetings, func(m domain.Meeting) bool { return m.ID == id })
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	return lo.ToPtr(m.Clone()), nil
}

func (r *MeetingRepository) GetByCode(_ context.Context, code string) (*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, _, ok := lo.FindIndexOf(r.meetings, func(m domain.Meeting) bool { return m.RoomCode == code })
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	return lo.ToPtr(m.Clone()), nil
}

func (r *MeetingRepository) List(_ context.Context) ([]domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.meetings, func(m domain.Meeting, _ int) domain.Meeting { return m.Clone() }), nil
}

func (r *MeetingRepository) Update(_ context.Context, id int64, patch domain.MeetingPatch) (*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(r.meetings, func(m domain.Meeting) bool { return m.ID == id })
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	r.meetings[idx].Apply(patch)
	return lo.ToPtr(r.meetings[idx].Clone()), nil
}

func (r *MeetingRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(r.meetings, func(m domain.Meeting) bool { return m.ID == id })
	if !ok {
		return domain.ErrMeetingNotFound
	}
	r.meetings = append(r.meetings[:idx], r.meetings[idx+1:]...)
	return nil
}
