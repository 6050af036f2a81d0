package badgerstore

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *PreferenceRepository {
	t.Helper()
	db, err := Open(Options{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPreferenceRepository(db, slog.Default())
}

func Test_Background_Preference_RoundTrip(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetBackground(ctx, "user-1")
	req.ErrorIs(err, domain.ErrNoPreference)

	req.NoError(repo.SetBackground(ctx, "user-1", "3"))
	got, err := repo.GetBackground(ctx, "user-1")
	req.NoError(err)
	req.Equal("3", got)

	_, err = repo.GetBackground(ctx, "user-2")
	req.ErrorIs(err, domain.ErrNoPreference)
}

func Test_Settings_Save_And_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	s := domain.DefaultSettings()
	s.DisplayName = "Alice"
	s.Theme = "light"
	req.NoError(repo.SaveSettings(ctx, "user-1", s))

	got, err := repo.GetSettings(ctx, "user-1")
	req.NoError(err)
	req.Equal(s, got)

	req.NoError(repo.DeleteSettings(ctx, "user-1"))
	_, err = repo.GetSettings(ctx, "user-1")
	req.ErrorIs(err, domain.ErrNoPreference)
}

func Test_InMemory_Open(t *testing.T) {
	req := require.New(t)
	db, err := Open(Options{InMemory: true})
	req.NoError(err)
	defer db.Close()

	repo := NewPreferenceRepository(db, slog.Default())
	req.NoError(repo.SetBackground(context.Background(), "u", "1"))
}
