package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ParticipantRepository struct {
	db DB
}

func NewParticipantRepository(db DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Add — вставка и чтение состава под advisory-lock встречи,
// поэтому возвращаемый состав всегда содержит этот коммит.
func (r *ParticipantRepository) Add(ctx context.Context, p domain.Participant) ([]domain.Participant, error) {
	var roster []domain.Participant
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockMeeting(ctx, tx, p.MeetingID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, queryAddParticipant,
			p.MeetingID, p.ID, p.Name, p.AudioEnabled, p.VideoEnabled, p.IsScreenSharing,
			string(p.ConnectionQuality), p.JoinedAt,
		); err != nil {
			return err
		}
		var err error
		roster, err = listParticipants(ctx, tx, p.MeetingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *ParticipantRepository) Remove(ctx context.Context, meetingID int64, participantID string) ([]domain.Participant, bool, error) {
	var (
		roster  []domain.Participant
		removed bool
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockMeeting(ctx, tx, meetingID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, queryRemoveParticipant, meetingID, participantID)
		if err != nil {
			return err
		}
		removed = tag.RowsAffected() > 0
		roster, err = listParticipants(ctx, tx, meetingID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return roster, removed, nil
}

func (r *ParticipantRepository) List(ctx context.Context, meetingID int64) ([]domain.Participant, error) {
	return listParticipants(ctx, r.db, meetingID)
}

func (r *ParticipantRepository) Update(ctx context.Context, meetingID int64, participantID string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	var quality *string
	if patch.ConnectionQuality != nil {
		q := string(*patch.ConnectionQuality)
		quality = &q
	}
	rows, err := r.db.Query(ctx, queryUpdateParticipant,
		meetingID, participantID, patch.Name, patch.AudioEnabled, patch.VideoEnabled, patch.IsScreenSharing, quality,
	)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Participant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

func listParticipants(ctx context.Context, q querier, meetingID int64) ([]domain.Participant, error) {
	rows, err := q.Query(ctx, queryListParticipants, meetingID)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Participant])
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Participant{}
	}
	return list, nil
}
