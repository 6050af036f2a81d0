//go:generate go run go.uber.org/mock/mockgen -source=event.go -destination=../mocks/mock_publisher.go -package=mocks
package domain

import "context"

type EventType string

const (
	EventParticipantJoined  EventType = "participant_joined"
	EventParticipantLeft    EventType = "participant_left"
	EventParticipantUpdated EventType = "participant_updated"
	EventChat               EventType = "chat"
	EventChatDeleted        EventType = "chat_deleted"
	EventMeetingUpdated     EventType = "meeting_updated"
	EventMeetingDeleted     EventType = "meeting_deleted"
)

type Event struct {
	Type      EventType `json:"type"`
	MeetingID int64     `json:"meetingId"`
	Payload   any       `json:"payload"`
}

// Publisher доставляет события подписчикам встречи. Доставка best-effort.
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
