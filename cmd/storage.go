package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/meeting-service/config"
	"github.com/cwrk-planet/meeting-service/internal/memory"
	"github.com/cwrk-planet/meeting-service/internal/postgres"
	"github.com/cwrk-planet/meeting-service/internal/service"
)

type stores struct {
	meetings     service.MeetingRepository
	participants service.ParticipantRepository
	chat         service.ChatRepository
	close        func()
}

// openStores выбирает хранилище встреч/участников/чата по storage.driver.
func openStores(ctx context.Context, cfg config.Storage) (*stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, postgres.Config{
			DSN:             cfg.Postgres.DSN,
			MaxConns:        cfg.Postgres.MaxConns,
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
			ApplicationName: "meeting-service",
		})
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		slog.Info("storage: postgres")
		return &stores{
			meetings:     postgres.NewMeetingRepository(db.Pool),
			participants: postgres.NewParticipantRepository(db.Pool),
			chat:         postgres.NewChatRepository(db.Pool),
			close:        db.Close,
		}, nil
	default:
		slog.Info("storage: memory")
		return &stores{
			meetings:     memory.NewMeetingRepository(),
			participants: memory.NewParticipantRepository(),
			chat:         memory.NewChatRepository(),
			close:        func() {},
		}, nil
	}
}
