package grpcx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/memory"
	"github.com/cwrk-planet/meeting-service/internal/service"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	roster := memory.NewParticipantRepository()
	meetings := memory.NewMeetingRepository()
	srv := NewServer(
		service.NewMeetingService(meetings, roster, service.Options{}),
		service.NewParticipantService(roster, service.Options{}),
		service.NewChatService(memory.NewChatRepository(), meetings, service.Options{}),
	)

	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryServerInterceptor(time.Second)))
	Register(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func TestGRPC_Meetings(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), mdUserID, "alice")

	created, err := c.CreateMeeting(ctx, &CreateMeetingRequest{})
	req.NoError(err)
	req.Equal("alice", created.Meeting.HostID)
	req.True(domain.ValidRoomCode(created.Meeting.RoomCode))

	got, err := c.GetMeeting(ctx, &MeetingRequest{ID: created.Meeting.ID})
	req.NoError(err)
	req.Equal(created.Meeting.RoomCode, got.Meeting.RoomCode)

	_, err = c.GetMeeting(ctx, &MeetingRequest{ID: 404})
	req.Equal(codes.NotFound, status.Code(err))

	_, err = c.GetMeetingByCode(ctx, &MeetingByCodeRequest{Code: "ZZZ-999", Strict: true})
	req.Equal(codes.NotFound, status.Code(err))

	demo, err := c.GetMeetingByCode(ctx, &MeetingByCodeRequest{Code: "ZZZ-999"})
	req.NoError(err)
	req.True(demo.Meeting.Demo)
	req.Len(demo.Meeting.Participants, 2)

	list, err := c.ListMeetings(ctx, &ListMeetingsRequest{})
	req.NoError(err)
	req.Len(list.Items, 2)

	upd, err := c.UpdateMeeting(ctx, &UpdateMeetingRequest{ID: created.Meeting.ID, Patch: domain.MeetingPatch{IsActive: lo.ToPtr(false)}})
	req.NoError(err)
	req.False(upd.Meeting.IsActive)

	del, err := c.DeleteMeeting(ctx, &MeetingRequest{ID: created.Meeting.ID})
	req.NoError(err)
	req.True(del.Deleted)

	_, err = c.DeleteMeeting(ctx, &MeetingRequest{ID: created.Meeting.ID})
	req.Equal(codes.NotFound, status.Code(err))
}

func TestGRPC_ParticipantsAndChat(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t)
	ctx := context.Background()

	roster, err := c.AddParticipant(ctx, &AddParticipantRequest{MeetingID: 3, Participant: domain.Participant{ID: "u1", Name: "One"}})
	req.NoError(err)
	req.Len(roster.Items, 1)

	_, err = c.AddParticipant(ctx, &AddParticipantRequest{MeetingID: 3, Participant: domain.Participant{Name: "anon"}})
	req.Equal(codes.InvalidArgument, status.Code(err))

	p, err := c.UpdateParticipant(ctx, &UpdateParticipantRequest{MeetingID: 3, ParticipantID: "u1", Patch: domain.ParticipantPatch{AudioEnabled: lo.ToPtr(true)}})
	req.NoError(err)
	req.True(p.Participant.AudioEnabled)

	listed, err := c.ListParticipants(ctx, &MeetingRequest{ID: 3})
	req.NoError(err)
	req.Len(listed.Items, 1)

	roster, err = c.RemoveParticipant(ctx, &ParticipantRequest{MeetingID: 3, ParticipantID: "u1"})
	req.NoError(err)
	req.Empty(roster.Items)

	sent, err := c.SendMessage(ctx, &SendMessageRequest{MeetingID: 3, Message: domain.ChatMessage{SenderID: "u1", Content: "hey"}})
	req.NoError(err)
	req.Equal("hey", sent.Message.Content)

	msgs, err := c.ListMessages(ctx, &MeetingRequest{ID: 3})
	req.NoError(err)
	req.Len(msgs.Items, 4)

	_, err = c.DeleteMessage(ctx, &MessageRequest{MeetingID: 3, MessageID: msgs.Items[0].ID})
	req.Equal(codes.NotFound, status.Code(err), "demo messages are not deletable")

	del, err := c.DeleteMessage(ctx, &MessageRequest{MeetingID: 3, MessageID: sent.Message.ID})
	req.NoError(err)
	req.True(del.Deleted)
}

func TestUnaryServerInterceptor_RecoversPanic(t *testing.T) {
	req := require.New(t)
	icpt := UnaryServerInterceptor(0)

	_, err := icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(ctx context.Context, _ any) (any, error) {
			panic("boom")
		})
	req.Equal(codes.Internal, status.Code(err))

	var hasDeadline bool
	_, err = icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(ctx context.Context, _ any) (any, error) {
			_, hasDeadline = ctx.Deadline()
			return nil, nil
		})
	req.NoError(err)
	req.True(hasDeadline)
}

func TestMapErr(t *testing.T) {
	req := require.New(t)

	ctx := context.Background()

	req.NoError(mapErr(ctx, nil))
	req.Equal(codes.NotFound, status.Code(mapErr(ctx, domain.ErrMeetingNotFound)))
	req.Equal(codes.InvalidArgument, status.Code(mapErr(ctx, domain.ErrInvalidInput)))
	req.Equal(codes.PermissionDenied, status.Code(mapErr(ctx, domain.ErrPresetBackground)))

	nf := status.Convert(mapErr(ctx, domain.ErrMeetingNotFound))
	req.Equal("meeting not found", nf.Message())

	internal := status.Convert(mapErr(ctx, fmt.Errorf("meetings.Create: %w",
		errors.New(`ERROR: relation "meetings" does not exist (SQLSTATE 42P01)`))))
	req.Equal(codes.Internal, internal.Code())
	req.Equal("internal server error", internal.Message())
	req.NotContains(internal.Message(), "SQLSTATE")
}
