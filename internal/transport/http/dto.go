package http

import "github.com/cwrk-planet/meeting-service/internal/domain"

type CreateMeetingRequest struct {
	HostID string `json:"hostId"`
}

type SendMessageRequest struct {
	SenderID   string             `json:"senderId"`
	SenderName string             `json:"senderName"`
	Content    string             `json:"content"`
	Type       domain.MessageType `json:"type"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

type UserBackgroundRequest struct {
	BackgroundID string `json:"backgroundId"`
}

type UserBackgroundResponse struct {
	UserID       string `json:"userId"`
	BackgroundID string `json:"backgroundId"`
}
