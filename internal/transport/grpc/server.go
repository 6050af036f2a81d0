package grpcx

import (
	"context"
	"log/slog"

	"github.com/cwrk-planet/meeting-service/internal/service"
	"github.com/cwrk-planet/meeting-service/pkg/errs"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const mdUserID = "x-user-id"

type Server struct {
	meetingSvc     *service.MeetingService
	participantSvc *service.ParticipantService
	chatSvc        *service.ChatService
}

var _ MeetingServiceServer = (*Server)(nil)

func NewServer(
	meetingSvc *service.MeetingService,
	participantSvc *service.ParticipantService,
	chatSvc *service.ChatService,
) *Server {
	return &Server{
		meetingSvc:     meetingSvc,
		participantSvc: participantSvc,
		chatSvc:        chatSvc,
	}
}

func Register(grpcServer *grpc.Server, s *Server) {
	grpcServer.RegisterService(&ServiceDesc, s)
}

// -------- helpers --------

// userFromMD — необязательный x-user-id из метаданных.
func userFromMD(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return first(md.Get(mdUserID))
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}

	return ss[0]
}

func mapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	code := errs.Code(err)
	if code == codes.Internal {
		// текст внутренних ошибок (pgx и т.п.) клиенту не отдаём
		slog.ErrorContext(ctx, "grpc call failed", slog.Any("err", err))
		return status.Error(codes.Internal, "internal server error")
	}
	return status.Error(code, err.Error())
}

// -------- meetings --------

func (s *Server) CreateMeeting(ctx context.Context, in *CreateMeetingRequest) (*MeetingResponse, error) {
	host := in.HostID
	if host == "" {
		host = userFromMD(ctx)
	}
	m, err := s.meetingSvc.CreateMeeting(ctx, host)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &MeetingResponse{Meeting: m}, nil
}

func (s *Server) GetMeeting(ctx context.Context, in *MeetingRequest) (*MeetingResponse, error) {
	m, err := s.meetingSvc.GetMeeting(ctx, in.ID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &MeetingResponse{Meeting: m}, nil
}

func (s *Server) GetMeetingByCode(ctx context.Context, in *MeetingByCodeRequest) (*MeetingResponse, error) {
	lookup := s.meetingSvc.GetMeetingByCode
	if in.Strict {
		lookup = s.meetingSvc.FindMeetingByCode
	}
	m, err := lookup(ctx, in.Code)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &MeetingResponse{Meeting: m}, nil
}

func (s *Server) ListMeetings(ctx context.Context, _ *ListMeetingsRequest) (*ListMeetingsResponse, error) {
	items, err := s.meetingSvc.ListMeetings(ctx)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &ListMeetingsResponse{Items: items}, nil
}

func (s *Server) UpdateMeeting(ctx context.Context, in *UpdateMeetingRequest) (*MeetingResponse, error) {
	m, err := s.meetingSvc.UpdateMeeting(ctx, in.ID, in.Patch)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &MeetingResponse{Meeting: m}, nil
}

func (s *Server) DeleteMeeting(ctx context.Context, in *MeetingRequest) (*DeleteResponse, error) {
	ok, err := s.meetingSvc.DeleteMeeting(ctx, in.ID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &DeleteResponse{Deleted: ok}, nil
}

// -------- participants --------

func (s *Server) AddParticipant(ctx context.Context, in *AddParticipantRequest) (*RosterResponse, error) {
	roster, err := s.participantSvc.AddParticipant(ctx, in.MeetingID, in.Participant)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &RosterResponse{Items: roster}, nil
}

func (s *Server) RemoveParticipant(ctx context.Context, in *ParticipantRequest) (*RosterResponse, error) {
	roster, err := s.participantSvc.RemoveParticipant(ctx, in.MeetingID, in.ParticipantID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &RosterResponse{Items: roster}, nil
}

func (s *Server) ListParticipants(ctx context.Context, in *MeetingRequest) (*RosterResponse, error) {
	roster, err := s.participantSvc.ListParticipants(ctx, in.ID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &RosterResponse{Items: roster}, nil
}

func (s *Server) UpdateParticipant(ctx context.Context, in *UpdateParticipantRequest) (*ParticipantResponse, error) {
	p, err := s.participantSvc.UpdateParticipant(ctx, in.MeetingID, in.ParticipantID, in.Patch)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &ParticipantResponse{Participant: p}, nil
}

// -------- chat --------

func (s *Server) SendMessage(ctx context.Context, in *SendMessageRequest) (*MessageResponse, error) {
	msg := in.Message
	if msg.SenderID == "" {
		msg.SenderID = userFromMD(ctx)
	}
	saved, err := s.chatSvc.SendMessage(ctx, in.MeetingID, msg)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &MessageResponse{Message: saved}, nil
}

func (s *Server) ListMessages(ctx context.Context, in *MeetingRequest) (*ListMessagesResponse, error) {
	items, err := s.chatSvc.ListMessages(ctx, in.ID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &ListMessagesResponse{Items: items}, nil
}

func (s *Server) DeleteMessage(ctx context.Context, in *MessageRequest) (*DeleteResponse, error) {
	ok, err := s.chatSvc.DeleteMessage(ctx, in.MeetingID, in.MessageID)
	if err != nil {
		return nil, mapErr(ctx, err)
	}

	return &DeleteResponse{Deleted: ok}, nil
}
