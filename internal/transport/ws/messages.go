package ws

import "github.com/cwrk-planet/meeting-service/internal/domain"

// Типы сообщений, которые не приходят из доменных событий
const (
	TypeState   = "state"    // снапшот участников и чата при подключении
	TypeChat    = "chat"     // чат-сообщение (от клиента; рассылка идёт событием chat)
	TypeChatAck = "chat_ack" // подтверждение отправки, только отправителю
	TypeError   = "error"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type StatePayload struct {
	MeetingID    int64                `json:"meetingId"`
	Participants []domain.Participant `json:"participants"`
	Messages     []domain.ChatMessage `json:"messages"`
}

type ChatPayload struct {
	Message    string `json:"message"`
	SenderName string `json:"senderName,omitempty"`
}

// для client: снимает pending и дедуплицирует с событием chat
type ChatAckPayload struct {
	MsgID int64 `json:"msgId"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
