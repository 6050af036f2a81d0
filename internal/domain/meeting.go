package domain

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"time"
)

const (
	roomCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	roomCodeDigits  = "0123456789"
)

var roomCodeRe = regexp.MustCompile(`^[A-Z]{3}-[0-9]{3}$`)

type Meeting struct {
	ID           int64     `json:"id" db:"id"`
	RoomCode     string    `json:"roomCode" db:"room_code"`
	HostID       string    `json:"hostId" db:"host_id"`
	Participants []string  `json:"participants" db:"participants"`
	StartTime    time.Time `json:"startTime" db:"start_time"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	// Demo — встреча создана фолбэком по неизвестному коду, а не пользователем.
	Demo bool `json:"demo" db:"demo"`
}

// MeetingPatch — частичное обновление, nil-поля не трогаются.
type MeetingPatch struct {
	HostID       *string   `json:"hostId,omitempty"`
	Participants *[]string `json:"participants,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
}

// NewRoomCode генерирует код вида LLL-DDD. Уникальность не проверяется.
func NewRoomCode() string {
	b := make([]byte, 0, 7)
	for range 3 {
		b = append(b, roomCodeLetters[rand.IntN(len(roomCodeLetters))])
	}
	b = append(b, '-')
	for range 3 {
		b = append(b, roomCodeDigits[rand.IntN(len(roomCodeDigits))])
	}

	return string(b)
}

func ValidRoomCode(code string) bool {
	return roomCodeRe.MatchString(code)
}

func (m *Meeting) Apply(p MeetingPatch) {
	if p.HostID != nil {
		m.HostID = *p.HostID
	}
	if p.Participants != nil {
		m.Participants = slices.Clone(*p.Participants)
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
}

// Clone возвращает копию, не разделяющую срез участников с оригиналом.
func (m Meeting) Clone() Meeting {
	m.Participants = slices.Clone(m.Participants)
	if m.Participants == nil {
		m.Participants = []string{}
	}
	return m
}
