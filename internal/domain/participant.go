package domain

import "time"

type ConnectionQuality string

const (
	QualityExcellent ConnectionQuality = "excellent"
	QualityGood      ConnectionQuality = "good"
	QualityPoor      ConnectionQuality = "poor"
	QualityOffline   ConnectionQuality = "offline"
)

type Participant struct {
	ID                string            `json:"id" db:"id" validate:"required,max=128"`
	MeetingID         int64             `json:"meetingId" db:"meeting_id"`
	Name              string            `json:"name" db:"name" validate:"required,max=128"`
	AudioEnabled      bool              `json:"audioEnabled" db:"audio_enabled"`
	VideoEnabled      bool              `json:"videoEnabled" db:"video_enabled"`
	IsScreenSharing   bool              `json:"isScreenSharing" db:"is_screen_sharing"`
	ConnectionQuality ConnectionQuality `json:"connectionQuality" db:"connection_quality" validate:"omitempty,oneof=excellent good poor offline"`
	JoinedAt          time.Time         `json:"joinedAt" db:"joined_at"`
}

type ParticipantPatch struct {
	Name              *string            `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	AudioEnabled      *bool              `json:"audioEnabled,omitempty"`
	VideoEnabled      *bool              `json:"videoEnabled,omitempty"`
	IsScreenSharing   *bool              `json:"isScreenSharing,omitempty"`
	ConnectionQuality *ConnectionQuality `json:"connectionQuality,omitempty" validate:"omitempty,oneof=excellent good poor offline"`
}

func (p *Participant) Apply(patch ParticipantPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.AudioEnabled != nil {
		p.AudioEnabled = *patch.AudioEnabled
	}
	if patch.VideoEnabled != nil {
		p.VideoEnabled = *patch.VideoEnabled
	}
	if patch.IsScreenSharing != nil {
		p.IsScreenSharing = *patch.IsScreenSharing
	}
	if patch.ConnectionQuality != nil {
		p.ConnectionQuality = *patch.ConnectionQuality
	}
}

// DemoParticipants — двое «собеседников», которыми заполняется встреча,
// созданная по неизвестному коду комнаты.
func DemoParticipants(meetingID int64, now time.Time) []Participant {
	return []Participant{
		{
			ID:                "participant-1",
			MeetingID:         meetingID,
			Name:              "John Smith",
			AudioEnabled:      true,
			VideoEnabled:      true,
			ConnectionQuality: QualityExcellent,
			JoinedAt:          now,
		},
		{
			ID:                "participant-2",
			MeetingID:         meetingID,
			Name:              "Sarah Johnson",
			AudioEnabled:      true,
			VideoEnabled:      false,
			ConnectionQuality: QualityGood,
			JoinedAt:          now,
		},
	}
}
