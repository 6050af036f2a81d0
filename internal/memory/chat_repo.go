package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
)

type ChatRepository struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
	seeded   map[int64]struct{}
	nextID   int64
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{
		seeded: make(map[int64]struct{}),
		nextID: 1,
	}
}

func (r *ChatRepository) Save(_ context.Context, m *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.save(m)
	return nil
}

func (r *ChatRepository) save(m *domain.ChatMessage) {
	m.ID = r.nextID
	r.nextID++
	r.messages = append(r.messages, *m)
}

// SeedOnce кладёт демо-переписку во встречу ровно один раз за жизнь хранилища.
func (r *ChatRepository) SeedOnce(_ context.Context, meetingID int64, msgs []domain.ChatMessage) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seeded[meetingID]; ok {
		return false, nil
	}
	r.seeded[meetingID] = struct{}{}
	for i := range msgs {
		msgs[i].MeetingID = meetingID
		r.save(&msgs[i])
	}
	return true, nil
}

func (r *ChatRepository) List(_ context.Context, meetingID int64) ([]domain.ChatMessage, error) {
	r.mu.RLock()
	out := lo.Filter(r.messages, func(m domain.ChatMessage, _ int) bool { return m.MeetingID == meetingID })
	r.mu.RUnlock()

	domain.SortMessages(out)
	return out, nil
}

// Delete удаляет сообщение пользователя. Демо-сообщения не удаляются.
func (r *ChatRepository) Delete(_ context.Context, meetingID, messageID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.messages, func(m domain.ChatMessage) bool {
		return m.MeetingID == meetingID && m.ID == messageID && !m.Demo
	})
	if idx == -1 {
		return domain.ErrMessageNotFound
	}
	r.messages = slices.Delete(r.messages, idx, idx+1)
	return nil
}
