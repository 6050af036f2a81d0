package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
)

// BackgroundRepository — каталог фонов: пресеты плюс загруженные пользователями.
type BackgroundRepository struct {
	mu    sync.RWMutex
	items []domain.Background
}

func NewBackgroundRepository(presets []domain.Background) *BackgroundRepository {
	return &BackgroundRepository{items: slices.Clone(presets)}
}

func (r *BackgroundRepository) List(_ context.Context) ([]domain.Background, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.items), nil
}

func (r *BackgroundRepository) Get(_ context.Context, id int64) (*domain.Background, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bg, _, ok := lo.FindIndexOf(r.items, func(b domain.Background) bool { return b.ID == id })
	if !ok {
		return nil, domain.ErrBackgroundNotFound
	}
	return &bg, nil
}

// Create назначает ID как max(ID)+1.
func (r *BackgroundRepository) Create(_ context.Context, bg *domain.Background) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	if len(r.items) > 0 {
		maxID = lo.MaxBy(r.items, func(a, b domain.Background) bool { return a.ID > b.ID }).ID
	}
	bg.ID = maxID + 1
	r.items = append(r.items, *bg)
	return nil
}

func (r *BackgroundRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.items, func(b domain.Background) bool { return b.ID == id })
	if idx == -1 {
		return domain.ErrBackgroundNotFound
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return nil
}
