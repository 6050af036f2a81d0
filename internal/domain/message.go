package domain

import (
	"cmp"
	"slices"
	"time"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageSystem MessageType = "system"
)

type ChatMessage struct {
	ID         int64       `json:"id" db:"id"`
	MeetingID  int64       `json:"meetingId" db:"meeting_id"`
	SenderID   string      `json:"senderId" db:"sender_id" validate:"required,max=128"`
	SenderName string      `json:"senderName" db:"sender_name" validate:"max=128"`
	Content    string      `json:"content" db:"content" validate:"required"`
	Timestamp  time.Time   `json:"timestamp" db:"created_at"`
	Type       MessageType `json:"type" db:"type" validate:"omitempty,oneof=text system"`
	Demo       bool        `json:"demo" db:"demo"`
}

// DemoMessages — пример переписки, которую видит каждый новый участник.
// ID проставляет хранилище.
func DemoMessages(meetingID int64, now time.Time) []ChatMessage {
	return []ChatMessage{
		{
			MeetingID:  meetingID,
			SenderID:   "participant-1",
			SenderName: "John Smith",
			Content:    "Hello everyone! Can you hear me clearly?",
			Timestamp:  now.Add(-5 * time.Minute),
			Type:       MessageText,
			Demo:       true,
		},
		{
			MeetingID:  meetingID,
			SenderID:   "participant-2",
			SenderName: "Sarah Johnson",
			Content:    "Yes, audio is perfect. Thanks for joining!",
			Timestamp:  now.Add(-4 * time.Minute),
			Type:       MessageText,
			Demo:       true,
		},
		{
			MeetingID:  meetingID,
			SenderID:   "system",
			SenderName: "System",
			Content:    "John Smith started screen sharing",
			Timestamp:  now.Add(-3 * time.Minute),
			Type:       MessageSystem,
			Demo:       true,
		},
	}
}

// SortMessages сортирует по времени, при равенстве — по ID.
func SortMessages(msgs []ChatMessage) {
	slices.SortStableFunc(msgs, func(a, b ChatMessage) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
