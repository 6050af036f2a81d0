package postgres

import (
	"context"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ChatRepository struct {
	db DB
}

func NewChatRepository(db DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Save(ctx context.Context, m *domain.ChatMessage) error {
	return saveMessage(ctx, r.db, m)
}

// SeedOnce — отметка в meeting_chat_seeds и вставка демо-переписки в одной транзакции.
func (r *ChatRepository) SeedOnce(ctx context.Context, meetingID int64, msgs []domain.ChatMessage) (bool, error) {
	var seeded bool
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queryMarkSeeded, meetingID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		for i := range msgs {
			msgs[i].MeetingID = meetingID
			if err := saveMessage(ctx, tx, &msgs[i]); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

func (r *ChatRepository) List(ctx context.Context, meetingID int64) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, queryListMessages, meetingID)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ChatMessage])
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.ChatMessage{}
	}
	return list, nil
}

func (r *ChatRepository) Delete(ctx context.Context, meetingID, messageID int64) error {
	tag, err := r.db.Exec(ctx, queryDeleteMessage, meetingID, messageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func saveMessage(ctx context.Context, q querier, m *domain.ChatMessage) error {
	return q.QueryRow(ctx, querySaveMessage,
		m.MeetingID, m.SenderID, m.SenderName, m.Content, string(m.Type), m.Demo, m.Timestamp,
	).Scan(&m.ID)
}
