package domain

import (
	"errors"
	"fmt"

	"github.com/cwrk-planet/meeting-service/pkg/errs"
)

var (
	ErrMeetingNotFound     = fmt.Errorf("meeting %w", errs.ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", errs.ErrNotFound)
	ErrMessageNotFound     = fmt.Errorf("message %w", errs.ErrNotFound)

	ErrBackgroundNotFound = fmt.Errorf("background %w", errs.ErrNotFound)
	ErrPresetBackground   = fmt.Errorf("cannot delete preset background: %w", errs.ErrForbidden)
	ErrUnsupportedMedia   = errs.ErrUnsupportedMedia
	ErrTooLarge           = errs.ErrTooLarge

	// ErrNoPreference — внутренний маркер хранилища настроек, наружу не отдаётся.
	ErrNoPreference = errors.New("preference not set")

	ErrInvalidInput = errs.ErrInvalidInput
)
