package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMeetingRepository_CRUD(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewMeetingRepository()

	m1 := &domain.Meeting{RoomCode: "ABC-123", HostID: "h1", IsActive: true}
	m2 := &domain.Meeting{RoomCode: "XYZ-999", HostID: "h2", IsActive: true}
	req.NoError(repo.Create(ctx, m1))
	req.NoError(repo.Create(ctx, m2))
	req.Equal(int64(1), m1.ID)
	req.Equal(int64(2), m2.ID)

	got, err := repo.GetByCode(ctx, "XYZ-999")
	req.NoError(err)
	req.Equal(m2.ID, got.ID)

	_, err = repo.GetByCode(ctx, "NOP-000")
	req.ErrorIs(err, domain.ErrMeetingNotFound)

	updated, err := repo.Update(ctx, m1.ID, domain.MeetingPatch{IsActive: lo.ToPtr(false)})
	req.NoError(err)
	req.False(updated.IsActive)
	req.Equal("h1", updated.HostID)

	_, err = repo.Update(ctx, 42, domain.MeetingPatch{})
	req.ErrorIs(err, domain.ErrMeetingNotFound)

	req.NoError(repo.Delete(ctx, m1.ID))
	req.ErrorIs(repo.Delete(ctx, m1.ID), domain.ErrMeetingNotFound)

	all, err := repo.List(ctx)
	req.NoError(err)
	req.Len(all, 1)
}

func TestMeetingRepository_ReturnsCopies(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewMeetingRepository()
	m := &domain.Meeting{RoomCode: "ABC-123", Participants: []string{"a"}}
	req.NoError(repo.Create(ctx, m))

	got, err := repo.Get(ctx, m.ID)
	req.NoError(err)
	got.Participants[0] = "mutated"
	got.HostID = "mutated"

	again, err := repo.Get(ctx, m.ID)
	req.NoError(err)
	req.Equal("a", again.Participants[0])
	req.Empty(again.HostID)
}

func TestParticipantRepository_AddRemoveScenario(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository()

	roster, err := repo.Add(ctx, domain.Participant{ID: "u1", MeetingID: 1, Name: "Alice", AudioEnabled: true, VideoEnabled: true})
	req.NoError(err)
	req.Len(roster, 1)

	other, err := repo.List(ctx, 2)
	req.NoError(err)
	req.Empty(other)

	roster, removed, err := repo.Remove(ctx, 1, "u1")
	req.NoError(err)
	req.True(removed)
	req.Empty(roster)

	again, removed, err := repo.Remove(ctx, 1, "u1")
	req.NoError(err)
	req.False(removed)
	req.Equal(roster, again)
}

func TestParticipantRepository_ReadsDoNotAllocateRosters(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository()

	for id := int64(1); id <= 100; id++ {
		items, err := repo.List(ctx, id)
		req.NoError(err)
		req.NotNil(items)
		req.Empty(items)

		_, removed, err := repo.Remove(ctx, id, "ghost")
		req.NoError(err)
		req.False(removed)

		_, err = repo.Update(ctx, id, "ghost", domain.ParticipantPatch{})
		req.ErrorIs(err, domain.ErrParticipantNotFound)
	}
	req.Empty(repo.rosters)

	_, err := repo.Add(ctx, domain.Participant{ID: "u1", MeetingID: 5, Name: "One"})
	req.NoError(err)
	req.Len(repo.rosters, 1)
}

func TestParticipantRepository_DuplicatesAllowed_RemoveFirstOnly(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository()

	_, err := repo.Add(ctx, domain.Participant{ID: "u1", MeetingID: 1, Name: "first"})
	req.NoError(err)
	roster, err := repo.Add(ctx, domain.Participant{ID: "u1", MeetingID: 1, Name: "second"})
	req.NoError(err)
	req.Len(roster, 2)

	roster, _, err = repo.Remove(ctx, 1, "u1")
	req.NoError(err)
	req.Len(roster, 1)
	req.Equal("second", roster[0].Name)
}

func TestParticipantRepository_Update(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository()
	_, err := repo.Add(ctx, domain.Participant{ID: "u1", MeetingID: 1, Name: "Alice"})
	req.NoError(err)

	p, err := repo.Update(ctx, 1, "u1", domain.ParticipantPatch{IsScreenSharing: lo.ToPtr(true)})
	req.NoError(err)
	req.True(p.IsScreenSharing)
	req.Equal("Alice", p.Name)

	_, err = repo.Update(ctx, 1, "ghost", domain.ParticipantPatch{})
	req.ErrorIs(err, domain.ErrParticipantNotFound)
	_, err = repo.Update(ctx, 2, "u1", domain.ParticipantPatch{})
	req.ErrorIs(err, domain.ErrParticipantNotFound)
}

func TestParticipantRepository_ConcurrentAddsReturnOwnCommit(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository()

	const n = 50
	var wg sync.WaitGroup
	sizes := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			roster, err := repo.Add(ctx, domain.Participant{ID: "u", MeetingID: 1, Name: "x"})
			if err == nil {
				sizes[i] = len(roster)
			}
		}()
	}
	wg.Wait()

	// каждая вставка видит свой коммит и все предыдущие: размеры 1..n без повторов
	req.ElementsMatch(lo.RangeFrom(1, n), sizes)
}

func TestChatRepository_SeedOnceAndSort(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewChatRepository()
	now := time.Now()

	seeded, err := repo.SeedOnce(ctx, 1, domain.DemoMessages(1, now))
	req.NoError(err)
	req.True(seeded)
	seeded, err = repo.SeedOnce(ctx, 1, domain.DemoMessages(1, now))
	req.NoError(err)
	req.False(seeded)

	msg := &domain.ChatMessage{MeetingID: 1, SenderID: "u1", Content: "hi", Timestamp: now, Type: domain.MessageText}
	req.NoError(repo.Save(ctx, msg))
	req.Equal(int64(4), msg.ID)

	list, err := repo.List(ctx, 1)
	req.NoError(err)
	req.Len(list, 4)
	req.True(slicesSortedByTime(list))
	req.Equal("hi", list[3].Content)
}

func TestChatRepository_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewChatRepository()

	_, err := repo.SeedOnce(ctx, 1, domain.DemoMessages(1, time.Now()))
	req.NoError(err)
	msg := &domain.ChatMessage{MeetingID: 1, SenderID: "u1", Content: "bye", Timestamp: time.Now()}
	req.NoError(repo.Save(ctx, msg))

	req.ErrorIs(repo.Delete(ctx, 2, msg.ID), domain.ErrMessageNotFound)
	req.ErrorIs(repo.Delete(ctx, 1, 1), domain.ErrMessageNotFound, "demo messages are not deletable")
	req.NoError(repo.Delete(ctx, 1, msg.ID))
	req.ErrorIs(repo.Delete(ctx, 1, msg.ID), domain.ErrMessageNotFound)
}

func TestBackgroundRepository(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewBackgroundRepository(domain.PresetBackgrounds())

	bg := &domain.Background{Name: "mine", Type: domain.BackgroundImage, Category: domain.CategoryCustom}
	req.NoError(repo.Create(ctx, bg))
	req.Equal(int64(9), bg.ID)

	got, err := repo.Get(ctx, 9)
	req.NoError(err)
	req.Equal("mine", got.Name)

	req.NoError(repo.Delete(ctx, 9))
	_, err = repo.Get(ctx, 9)
	req.ErrorIs(err, domain.ErrBackgroundNotFound)

	all, err := repo.List(ctx)
	req.NoError(err)
	req.Len(all, 8)
}

func slicesSortedByTime(msgs []domain.ChatMessage) bool {
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			return false
		}
	}
	return true
}
