package grpcx

import (
	"context"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"google.golang.org/grpc"
)

const ServiceName = "meeting.v1.MeetingService"

// -------- messages --------

type CreateMeetingRequest struct {
	HostID string `json:"hostId"`
}

type MeetingRequest struct {
	ID int64 `json:"id"`
}

type MeetingByCodeRequest struct {
	Code   string `json:"code"`
	Strict bool   `json:"strict"`
}

type ListMeetingsRequest struct{}

type UpdateMeetingRequest struct {
	ID    int64               `json:"id"`
	Patch domain.MeetingPatch `json:"patch"`
}

type MeetingResponse struct {
	Meeting *domain.Meeting `json:"meeting"`
}

type ListMeetingsResponse struct {
	Items []domain.Meeting `json:"items"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type AddParticipantRequest struct {
	MeetingID   int64              `json:"meetingId"`
	Participant domain.Participant `json:"participant"`
}

type ParticipantRequest struct {
	MeetingID     int64  `json:"meetingId"`
	ParticipantID string `json:"participantId"`
}

type UpdateParticipantRequest struct {
	MeetingID     int64                   `json:"meetingId"`
	ParticipantID string                  `json:"participantId"`
	Patch         domain.ParticipantPatch `json:"patch"`
}

type RosterResponse struct {
	Items []domain.Participant `json:"items"`
}

type ParticipantResponse struct {
	Participant *domain.Participant `json:"participant"`
}

type SendMessageRequest struct {
	MeetingID int64              `json:"meetingId"`
	Message   domain.ChatMessage `json:"message"`
}

type MessageRequest struct {
	MeetingID int64 `json:"meetingId"`
	MessageID int64 `json:"messageId"`
}

type MessageResponse struct {
	Message *domain.ChatMessage `json:"message"`
}

type ListMessagesResponse struct {
	Items []domain.ChatMessage `json:"items"`
}

// -------- service --------

type MeetingServiceServer interface {
	CreateMeeting(context.Context, *CreateMeetingRequest) (*MeetingResponse, error)
	GetMeeting(context.Context, *MeetingRequest) (*MeetingResponse, error)
	GetMeetingByCode(context.Context, *MeetingByCodeRequest) (*MeetingResponse, error)
	ListMeetings(context.Context, *ListMeetingsRequest) (*ListMeetingsResponse, error)
	UpdateMeeting(context.Context, *UpdateMeetingRequest) (*MeetingResponse, error)
	DeleteMeeting(context.Context, *MeetingRequest) (*DeleteResponse, error)

	AddParticipant(context.Context, *AddParticipantRequest) (*RosterResponse, error)
	RemoveParticipant(context.Context, *ParticipantRequest) (*RosterResponse, error)
	ListParticipants(context.Context, *MeetingRequest) (*RosterResponse, error)
	UpdateParticipant(context.Context, *UpdateParticipantRequest) (*ParticipantResponse, error)

	SendMessage(context.Context, *SendMessageRequest) (*MessageResponse, error)
	ListMessages(context.Context, *MeetingRequest) (*ListMessagesResponse, error)
	DeleteMessage(context.Context, *MessageRequest) (*DeleteResponse, error)
}

// unary собирает MethodDesc без сгенерированного кода.
func unary[Req, Resp any](name string, call func(MeetingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(MeetingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MeetingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateMeeting", MeetingServiceServer.CreateMeeting),
		unary("GetMeeting", MeetingServiceServer.GetMeeting),
		unary("GetMeetingByCode", MeetingServiceServer.GetMeetingByCode),
		unary("ListMeetings", MeetingServiceServer.ListMeetings),
		unary("UpdateMeeting", MeetingServiceServer.UpdateMeeting),
		unary("DeleteMeeting", MeetingServiceServer.DeleteMeeting),
		unary("AddParticipant", MeetingServiceServer.AddParticipant),
		unary("RemoveParticipant", MeetingServiceServer.RemoveParticipant),
		unary("ListParticipants", MeetingServiceServer.ListParticipants),
		unary("UpdateParticipant", MeetingServiceServer.UpdateParticipant),
		unary("SendMessage", MeetingServiceServer.SendMessage),
		unary("ListMessages", MeetingServiceServer.ListMessages),
		unary("DeleteMessage", MeetingServiceServer.DeleteMessage),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "meeting/v1/meeting.proto",
}

// -------- client --------

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, c *Client, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMeeting(ctx context.Context, in *CreateMeetingRequest, opts ...grpc.CallOption) (*MeetingResponse, error) {
	return invoke[CreateMeetingRequest, MeetingResponse](ctx, c, "CreateMeeting", in, opts...)
}

func (c *Client) GetMeeting(ctx context.Context, in *MeetingRequest, opts ...grpc.CallOption) (*MeetingResponse, error) {
	return invoke[MeetingRequest, MeetingResponse](ctx, c, "GetMeeting", in, opts...)
}

func (c *Client) GetMeetingByCode(ctx context.Context, in *MeetingByCodeRequest, opts ...grpc.CallOption) (*MeetingResponse, error) {
	return invoke[MeetingByCodeRequest, MeetingResponse](ctx, c, "GetMeetingByCode", in, opts...)
}

func (c *Client) ListMeetings(ctx context.Context, in *ListMeetingsRequest, opts ...grpc.CallOption) (*ListMeetingsResponse, error) {
	return invoke[ListMeetingsRequest, ListMeetingsResponse](ctx, c, "ListMeetings", in, opts...)
}

func (c *Client) UpdateMeeting(ctx context.Context, in *UpdateMeetingRequest, opts ...grpc.CallOption) (*MeetingResponse, error) {
	return invoke[UpdateMeetingRequest, MeetingResponse](ctx, c, "UpdateMeeting", in, opts...)
}

func (c *Client) DeleteMeeting(ctx context.Context, in *MeetingRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return invoke[MeetingRequest, DeleteResponse](ctx, c, "DeleteMeeting", in, opts...)
}

func (c *Client) AddParticipant(ctx context.Context, in *AddParticipantRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[AddParticipantRequest, RosterResponse](ctx, c, "AddParticipant", in, opts...)
}

func (c *Client) RemoveParticipant(ctx context.Context, in *ParticipantRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[ParticipantRequest, RosterResponse](ctx, c, "RemoveParticipant", in, opts...)
}

func (c *Client) ListParticipants(ctx context.Context, in *MeetingRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[MeetingRequest, RosterResponse](ctx, c, "ListParticipants", in, opts...)
}

func (c *Client) UpdateParticipant(ctx context.Context, in *UpdateParticipantRequest, opts ...grpc.CallOption) (*ParticipantResponse, error) {
	return invoke[UpdateParticipantRequest, ParticipantResponse](ctx, c, "UpdateParticipant", in, opts...)
}

func (c *Client) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[SendMessageRequest, MessageResponse](ctx, c, "SendMessage", in, opts...)
}

func (c *Client) ListMessages(ctx context.Context, in *MeetingRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return invoke[MeetingRequest, ListMessagesResponse](ctx, c, "ListMessages", in, opts...)
}

func (c *Client) DeleteMessage(ctx context.Context, in *MessageRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	return invoke[MessageRequest, DeleteResponse](ctx, c, "DeleteMessage", in, opts...)
}
