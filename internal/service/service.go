package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

type MeetingRepository interface {
	Create(ctx context.Context, m *domain.Meeting) error
	Get(ctx context.Context, id int64) (*domain.Meeting, error)
	GetByCode(ctx context.Context, code string) (*domain.Meeting, error)
	List(ctx context.Context) ([]domain.Meeting, error)
	Update(ctx context.Context, id int64, patch domain.MeetingPatch) (*domain.Meeting, error)
	Delete(ctx context.Context, id int64) error
}

type ParticipantRepository interface {
	Add(ctx context.Context, p domain.Participant) ([]domain.Participant, error)
	Remove(ctx context.Context, meetingID int64, participantID string) ([]domain.Participant, bool, error)
	List(ctx context.Context, meetingID int64) ([]domain.Participant, error)
	Update(ctx context.Context, meetingID int64, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error)
}

type ChatRepository interface {
	Save(ctx context.Context, m *domain.ChatMessage) error
	SeedOnce(ctx context.Context, meetingID int64, msgs []domain.ChatMessage) (bool, error)
	List(ctx context.Context, meetingID int64) ([]domain.ChatMessage, error)
	Delete(ctx context.Context, meetingID, messageID int64) error
}

type BackgroundRepository interface {
	List(ctx context.Context) ([]domain.Background, error)
	Get(ctx context.Context, id int64) (*domain.Background, error)
	Create(ctx context.Context, bg *domain.Background) error
	Delete(ctx context.Context, id int64) error
}

type PreferenceRepository interface {
	GetBackground(ctx context.Context, userID string) (string, error)
	SetBackground(ctx context.Context, userID, backgroundID string) error
	GetSettings(ctx context.Context, userID string) (domain.UserSettings, error)
	SaveSettings(ctx context.Context, userID string, s domain.UserSettings) error
	DeleteSettings(ctx context.Context, userID string) error
}

// Latency — искусственная задержка, имитирующая сетевой round-trip.
// Read/Write — встречи, фоны и настройки; Member — все операции с участниками и чатом.
type Latency struct {
	Read   time.Duration
	Write  time.Duration
	Member time.Duration
}

// Options — общие зависимости сервисов.
type Options struct {
	Latency   Latency
	Publisher domain.Publisher
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Publisher == nil {
		o.Publisher = domain.NopPublisher{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// delay ждёт d, но отпускает раньше, если контекст отменён.
func delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var validate = validator.New()

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}
