package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

type PreferenceService struct {
	prefs       PreferenceRepository
	backgrounds BackgroundRepository
	opts        Options
}

func NewPreferenceService(prefs PreferenceRepository, backgrounds BackgroundRepository, opts Options) *PreferenceService {
	return &PreferenceService{prefs: prefs, backgrounds: backgrounds, opts: opts.withDefaults()}
}

// GetUserBackground возвращает выбранный фон или "none".
func (s *PreferenceService) GetUserBackground(ctx context.Context, userID string) (string, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return "", err
	}
	id, err := s.prefs.GetBackground(ctx, userID)
	if errors.Is(err, domain.ErrNoPreference) {
		return domain.NoBackground, nil
	}
	return id, err
}

func (s *PreferenceService) SetUserBackground(ctx context.Context, userID, backgroundID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if backgroundID != domain.NoBackground {
		id, err := strconv.ParseInt(backgroundID, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: background id %q", domain.ErrInvalidInput, backgroundID)
		}
		if _, err := s.backgrounds.Get(ctx, id); err != nil {
			return err
		}
	}
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return err
	}
	return s.prefs.SetBackground(ctx, userID, backgroundID)
}

// GetSettings отдаёт сохранённые настройки или значения по умолчанию.
func (s *PreferenceService) GetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	if err := delay(ctx, s.opts.Latency.Read); err != nil {
		return domain.UserSettings{}, err
	}
	st, err := s.prefs.GetSettings(ctx, userID)
	if errors.Is(err, domain.ErrNoPreference) {
		return domain.DefaultSettings(), nil
	}
	return st, err
}

func (s *PreferenceService) SaveSettings(ctx context.Context, userID string, st domain.UserSettings) (domain.UserSettings, error) {
	if userID == "" {
		return domain.UserSettings{}, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	if err := validateStruct(st); err != nil {
		return domain.UserSettings{}, err
	}
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return domain.UserSettings{}, err
	}
	if err := s.prefs.SaveSettings(ctx, userID, st); err != nil {
		return domain.UserSettings{}, fmt.Errorf("prefs.SaveSettings: %w", err)
	}
	return st, nil
}

func (s *PreferenceService) ResetSettings(ctx context.Context, userID string) (domain.UserSettings, error) {
	if err := delay(ctx, s.opts.Latency.Write); err != nil {
		return domain.UserSettings{}, err
	}
	if err := s.prefs.DeleteSettings(ctx, userID); err != nil {
		return domain.UserSettings{}, fmt.Errorf("prefs.DeleteSettings: %w", err)
	}
	return domain.DefaultSettings(), nil
}
