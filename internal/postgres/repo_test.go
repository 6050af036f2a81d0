package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var (
	meetingCols     = []string{"id", "room_code", "host_id", "participants", "start_time", "is_active", "demo"}
	participantCols = []string{
		"id", "meeting_id", "name", "audio_enabled", "video_enabled",
		"is_screen_sharing", "connection_quality", "joined_at",
	}
	messageCols = []string{"id", "meeting_id", "sender_id", "sender_name", "content", "created_at", "type", "demo"}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestMeetingRepository_Create(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	start := time.Now()
	mock.ExpectQuery("INSERT INTO meetings").
		WithArgs("ABC-123", "host-1", []string{}, start, true, false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	m := &domain.Meeting{RoomCode: "ABC-123", HostID: "host-1", StartTime: start, IsActive: true}
	req.NoError(repo.Create(context.Background(), m))
	req.Equal(int64(7), m.ID)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_Get_NotFound(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM meetings WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "room_code", "host_id", "participants", "start_time", "is_active", "demo"}))

	_, err := repo.Get(context.Background(), 99)
	req.ErrorIs(err, domain.ErrMeetingNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_Delete_NotFound(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	mock.ExpectExec("DELETE FROM meetings").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM meetings").
		WithArgs(int64(6)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req.ErrorIs(repo.Delete(context.Background(), 5), domain.ErrMeetingNotFound)
	req.NoError(repo.Delete(context.Background(), 6))
	req.NoError(mock.ExpectationsWereMet())
}

func TestParticipantRepository_Remove_LocksMeeting(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewParticipantRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec("DELETE FROM meeting_participants").
		WithArgs(int64(1), "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery("SELECT (.+) FROM meeting_participants").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "meeting_id", "name", "audio_enabled", "video_enabled",
			"is_screen_sharing", "connection_quality", "joined_at",
		}))
	mock.ExpectCommit()

	roster, removed, err := repo.Remove(context.Background(), 1, "u1")
	req.NoError(err)
	req.False(removed)
	req.Empty(roster)
	req.NoError(mock.ExpectationsWereMet())
}

func TestChatRepository_SeedOnce_AlreadySeeded(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewChatRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO meeting_chat_seeds").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectCommit()

	seeded, err := repo.SeedOnce(context.Background(), 3, domain.DemoMessages(3, time.Now()))
	req.NoError(err)
	req.False(seeded)
	req.NoError(mock.ExpectationsWereMet())
}

func TestChatRepository_SeedOnce_InsertsDemo(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewChatRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO meeting_chat_seeds").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for i := 1; i <= 3; i++ {
		mock.ExpectQuery("INSERT INTO meeting_messages").
			WithArgs(int64(3), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), true, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(i)))
	}
	mock.ExpectCommit()

	msgs := domain.DemoMessages(3, time.Now())
	seeded, err := repo.SeedOnce(context.Background(), 3, msgs)
	req.NoError(err)
	req.True(seeded)
	req.Equal(int64(3), msgs[2].ID)
	req.NoError(mock.ExpectationsWereMet())
}

func TestChatRepository_Delete_NotFound(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewChatRepository(mock)

	mock.ExpectExec("DELETE FROM meeting_messages").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	req.ErrorIs(repo.Delete(context.Background(), 1, 2), domain.ErrMessageNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_GetByCode(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM meetings WHERE room_code").
		WithArgs("ABC-123").
		WillReturnRows(pgxmock.NewRows(meetingCols).
			AddRow(int64(2), "ABC-123", "host-1", []string{"u1"}, start, true, false))
	mock.ExpectQuery("SELECT (.+) FROM meetings WHERE room_code").
		WithArgs("NOP-000").
		WillReturnRows(pgxmock.NewRows(meetingCols))

	m, err := repo.GetByCode(context.Background(), "ABC-123")
	req.NoError(err)
	req.Equal(int64(2), m.ID)
	req.Equal("host-1", m.HostID)
	req.Equal([]string{"u1"}, m.Participants)
	req.Equal(start, m.StartTime)
	req.True(m.IsActive)

	_, err = repo.GetByCode(context.Background(), "NOP-000")
	req.ErrorIs(err, domain.ErrMeetingNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_Update_PartialPatch(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// незаданные поля уходят NULL-ами, COALESCE оставляет старые значения
	mock.ExpectQuery("UPDATE meetings").
		WithArgs(int64(4), (*string)(nil), nil, lo.ToPtr(false)).
		WillReturnRows(pgxmock.NewRows(meetingCols).
			AddRow(int64(4), "ABC-123", "host-1", []string{"u1"}, start, false, false))

	m, err := repo.Update(context.Background(), 4, domain.MeetingPatch{IsActive: lo.ToPtr(false)})
	req.NoError(err)
	req.False(m.IsActive)
	req.Equal("host-1", m.HostID)
	req.Equal([]string{"u1"}, m.Participants)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_Update_AllFields(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	ids := []string{"a", "b"}
	mock.ExpectQuery("UPDATE meetings").
		WithArgs(int64(4), lo.ToPtr("host-2"), ids, lo.ToPtr(true)).
		WillReturnRows(pgxmock.NewRows(meetingCols).
			AddRow(int64(4), "ABC-123", "host-2", ids, time.Now(), true, false))

	m, err := repo.Update(context.Background(), 4, domain.MeetingPatch{
		HostID:       lo.ToPtr("host-2"),
		Participants: &ids,
		IsActive:     lo.ToPtr(true),
	})
	req.NoError(err)
	req.Equal("host-2", m.HostID)
	req.Equal(ids, m.Participants)
	req.NoError(mock.ExpectationsWereMet())
}

func TestMeetingRepository_Update_NotFound(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewMeetingRepository(mock)

	mock.ExpectQuery("UPDATE meetings").
		WithArgs(int64(99), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(meetingCols))

	_, err := repo.Update(context.Background(), 99, domain.MeetingPatch{IsActive: lo.ToPtr(true)})
	req.ErrorIs(err, domain.ErrMeetingNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestParticipantRepository_Add_ReturnsRosterUnderLock(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewParticipantRepository(mock)

	joined := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec("INSERT INTO meeting_participants").
		WithArgs(int64(1), "u2", "Bob", true, false, false, "good", joined).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT (.+) FROM meeting_participants").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(participantCols).
			AddRow("u1", int64(1), "Alice", true, true, false, domain.QualityExcellent, joined.Add(-time.Minute)).
			AddRow("u2", int64(1), "Bob", true, false, false, domain.QualityGood, joined))
	mock.ExpectCommit()

	roster, err := repo.Add(context.Background(), domain.Participant{
		ID: "u2", MeetingID: 1, Name: "Bob", AudioEnabled: true,
		ConnectionQuality: domain.QualityGood, JoinedAt: joined,
	})
	req.NoError(err)
	req.Len(roster, 2)
	req.Equal("u1", roster[0].ID)
	req.Equal("u2", roster[1].ID)
	req.Equal(domain.QualityGood, roster[1].ConnectionQuality)
	req.NoError(mock.ExpectationsWereMet())
}

func TestParticipantRepository_Add_RollsBack(t *testing.T) {
	boom := errors.New("connection reset")
	cases := map[string]func(mock pgxmock.PgxPoolIface){
		"lock fails": func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec("SELECT pg_advisory_xact_lock").
				WithArgs(int64(1)).
				WillReturnError(boom)
		},
		"insert fails": func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec("SELECT pg_advisory_xact_lock").
				WithArgs(int64(1)).
				WillReturnResult(pgxmock.NewResult("SELECT", 1))
			mock.ExpectExec("INSERT INTO meeting_participants").
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(boom)
		},
		"roster read fails": func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec("SELECT pg_advisory_xact_lock").
				WithArgs(int64(1)).
				WillReturnResult(pgxmock.NewResult("SELECT", 1))
			mock.ExpectExec("INSERT INTO meeting_participants").
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			mock.ExpectQuery("SELECT (.+) FROM meeting_participants").
				WithArgs(int64(1)).
				WillReturnError(boom)
		},
	}
	for name, expect := range cases {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			mock := newMock(t)
			repo := NewParticipantRepository(mock)

			mock.ExpectBegin()
			expect(mock)
			mock.ExpectRollback()

			roster, err := repo.Add(context.Background(), domain.Participant{ID: "u1", MeetingID: 1, Name: "Alice"})
			req.ErrorIs(err, boom)
			req.Nil(roster)
			req.NoError(mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_Update(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewParticipantRepository(mock)

	joined := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE meeting_participants").
		WithArgs(int64(1), "u1", (*string)(nil), lo.ToPtr(false), (*bool)(nil), (*bool)(nil), lo.ToPtr("poor")).
		WillReturnRows(pgxmock.NewRows(participantCols).
			AddRow("u1", int64(1), "Alice", false, true, false, domain.QualityPoor, joined))
	mock.ExpectQuery("UPDATE meeting_participants").
		WithArgs(int64(1), "ghost", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(participantCols))

	p, err := repo.Update(context.Background(), 1, "u1", domain.ParticipantPatch{
		AudioEnabled:      lo.ToPtr(false),
		ConnectionQuality: lo.ToPtr(domain.QualityPoor),
	})
	req.NoError(err)
	req.False(p.AudioEnabled)
	req.Equal(domain.QualityPoor, p.ConnectionQuality)
	req.Equal("Alice", p.Name)

	_, err = repo.Update(context.Background(), 1, "ghost", domain.ParticipantPatch{AudioEnabled: lo.ToPtr(true)})
	req.ErrorIs(err, domain.ErrParticipantNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestChatRepository_List(t *testing.T) {
	req := require.New(t)
	mock := newMock(t)
	repo := NewChatRepository(mock)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM meeting_messages WHERE meeting_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(messageCols).
			AddRow(int64(1), int64(3), "participant-1", "John Smith", "Hello", now.Add(-time.Minute), domain.MessageText, true).
			AddRow(int64(4), int64(3), "u1", "Ada", "hi", now, domain.MessageText, false))
	mock.ExpectQuery("SELECT (.+) FROM meeting_messages WHERE meeting_id").
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(messageCols))

	msgs, err := repo.List(context.Background(), 3)
	req.NoError(err)
	req.Len(msgs, 2)
	req.True(msgs[0].Demo)
	req.Equal(int64(4), msgs[1].ID)
	req.Equal("hi", msgs[1].Content)
	req.Equal(now, msgs[1].Timestamp)

	empty, err := repo.List(context.Background(), 8)
	req.NoError(err)
	req.NotNil(empty)
	req.Empty(empty)
	req.NoError(mock.ExpectationsWereMet())
}
