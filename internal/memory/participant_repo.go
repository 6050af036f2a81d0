package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
)

type roster struct {
	mu    sync.Mutex
	items []domain.Participant
}

// ParticipantRepository — составы встреч. Каждый состав защищён своим мьютексом,
// чтобы read-modify-write «добавить и вернуть весь состав» был атомарным.
type ParticipantRepository struct {
	mu      sync.Mutex
	rosters map[int64]*roster
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{rosters: make(map[int64]*roster)}
}

func (r *ParticipantRepository) roster(meetingID int64) *roster {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.rosters[meetingID]
	if !ok {
		rs = &roster{}
		r.rosters[meetingID] = rs
	}
	return rs
}

// lookup не создаёт состав: чтение по чужим id не должно занимать память.
func (r *ParticipantRepository) lookup(meetingID int64) (*roster, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.rosters[meetingID]
	return rs, ok
}

// Add добавляет участника и возвращает состав встречи после вставки.
// Дубликаты не отсекаются.
func (r *ParticipantRepository) Add(_ context.Context, p domain.Participant) ([]domain.Participant, error) {
	rs := r.roster(p.MeetingID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.items = append(rs.items, p)
	return snapshot(rs.items), nil
}

// Remove удаляет первое совпадение. removed=false, если такого участника не было.
func (r *ParticipantRepository) Remove(_ context.Context, meetingID int64, participantID string) ([]domain.Participant, bool, error) {
	rs, ok := r.lookup(meetingID)
	if !ok {
		return []domain.Participant{}, false, nil
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := slices.IndexFunc(rs.items, func(p domain.Participant) bool { return p.ID == participantID })
	if idx == -1 {
		return snapshot(rs.items), false, nil
	}
	rs.items = slices.Delete(rs.items, idx, idx+1)
	return snapshot(rs.items), true, nil
}

func (r *ParticipantRepository) List(_ context.Context, meetingID int64) ([]domain.Participant, error) {
	rs, ok := r.lookup(meetingID)
	if !ok {
		return []domain.Participant{}, nil
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return snapshot(rs.items), nil
}

func (r *ParticipantRepository) Update(_ context.Context, meetingID int64, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	rs, ok := r.lookup(meetingID)
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := slices.IndexFunc(rs.items, func(p domain.Participant) bool { return p.ID == participantID })
	if idx == -1 {
		return nil, domain.ErrParticipantNotFound
	}
	rs.items[idx].Apply(patch)
	return lo.ToPtr(rs.items[idx]), nil
}

func snapshot(items []domain.Participant) []domain.Participant {
	out := make([]domain.Participant, len(items))
	copy(out, items)
	return out
}
