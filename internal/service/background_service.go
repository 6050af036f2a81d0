package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// лимит на загружаемую картинку
const MaxBackgroundSize = 5 << 20

type BackgroundService struct {
	backgrounds BackgroundRepository
	opts        Options
}

func NewBackgroundService(backgrounds BackgroundRepository, opts Options) *BackgroundService {
	return &BackgroundService{backgrounds: backgrounds, opts: opts.withDefaults()}
}

func (s *BackgroundService) ListBackgrounds(ctx context.Context) ([]domain.Background, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return nil, err
	}
	items, err := s.backgrounds.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(b domain.Background, _ int) domain.Background { return withURL(b) }), nil
}

func (s *BackgroundService) GetBackground(ctx context.Context, id int64) (*domain.Background, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return nil, err
	}
	bg, err := s.backgrounds.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := withURL(*bg)
	return &out, nil
}

// UploadBackground принимает только изображения, тип определяется по содержимому.
func (s *BackgroundService) UploadBackground(ctx context.Context, filename string, data []byte) (*domain.Background, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if len(data) > MaxBackgroundSize {
		return nil, domain.ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, mt.String())
	}
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return nil, err
	}

	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		name = "background"
	}
	bg := &domain.Background{
		Name:        name,
		Type:        domain.BackgroundImage,
		Category:    domain.CategoryCustom,
		CreatedAt:   s.opts.Now(),
		ContentType: mt.String(),
		Data:        data,
	}
	if err := s.backgrounds.Create(ctx, bg); err != nil {
		return nil, fmt.Errorf("backgrounds.Create: %w", err)
	}
	out := withURL(*bg)
	return &out, nil
}

// DeleteBackground удаляет только пользовательские фоны.
func (s *BackgroundService) DeleteBackground(ctx context.Context, id int64) error {
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return err
	}
	bg, err := s.backgrounds.Get(ctx, id)
	if err != nil {
		return err
	}
	if !bg.IsCustom() {
		return domain.ErrPresetBackground
	}
	return s.backgrounds.Delete(ctx, id)
}

// BackgroundImage отдаёт байты загруженного фона.
func (s *BackgroundService) BackgroundImage(ctx context.Context, id int64) ([]byte, string, error) {
	bg, err := s.backgrounds.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(bg.Data) == 0 {
		return nil, "", domain.ErrBackgroundNotFound
	}
	return bg.Data, bg.ContentType, nil
}

func withURL(b domain.Background) domain.Background {
	if b.IsCustom() {
		b.URL = fmt.Sprintf("/backgrounds/%d/image", b.ID)
	}
	return b
}
