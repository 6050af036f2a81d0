package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

type MeetingRepository struct {
	db DB
}

func NewMeetingRepository(db DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	participants := m.Participants
	if participants == nil {
		participants = []string{}
	}
	return r.db.QueryRow(ctx, queryCreateMeeting,
		m.RoomCode, m.HostID, participants, m.StartTime, m.IsActive, m.Demo,
	).Scan(&m.ID)
}

func (r *MeetingRepository) Get(ctx context.Context, id int64) (*domain.Meeting, error) {
	return r.getOne(ctx, queryGetMeeting, id)
}

func (r *MeetingRepository) GetByCode(ctx context.Context, code string) (*domain.Meeting, error) {
	return r.getOne(ctx, queryGetMeetingByCode, code)
}

func (r *MeetingRepository) List(ctx context.Context) ([]domain.Meeting, error) {
	rows, err := r.db.Query(ctx, queryListMeetings)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[domain.Meeting])
}

func (r *MeetingRepository) Update(ctx context.Context, id int64, patch domain.MeetingPatch) (*domain.Meeting, error) {
	var participants any
	if patch.Participants != nil {
		participants = *patch.Participants
	}
	return r.getOne(ctx, queryUpdateMeeting, id, patch.HostID, participants, patch.IsActive)
}

func (r *MeetingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, queryDeleteMeeting, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

func (r *MeetingRepository) getOne(ctx context.Context, sql string, args ...any) (*domain.Meeting, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Meeting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, err
	}
	return &m, nil
}
