//go:build unit

package snapshot_test

import (
	"context"
	"testing"
	"time"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/infra"
	"cappa-booking/internal/infra/snapshot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(flowID uuid.UUID) *booking.Snapshot {
	return &booking.Snapshot{
		FlowID: flowID,
		State:  booking.StateRoomSelection,
		Stay: booking.StayData{
			GuestName: "Adaeze Obi",
			Email:     "adaeze@example.com",
			Phone:     "08012345678",
			CheckIn:   time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
			CheckOut:  time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
			Adults:    2,
		},
		Rooms:     map[room.TypeID]int{room.TypeDeluxe: 1},
		UpdatedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find round-trip", func(t *testing.T) {
		store := snapshot.NewMemoryStore()
		flowID := uuid.New()
		snap := sampleSnapshot(flowID)
		require.NoError(t, store.Save(ctx, flowID, snap))

		got, err := store.Find(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, snap, got)
	})

	t.Run("find returns a copy", func(t *testing.T) {
		store := snapshot.NewMemoryStore()
		flowID := uuid.New()
		require.NoError(t, store.Save(ctx, flowID, sampleSnapshot(flowID)))

		first, err := store.Find(ctx, flowID)
		require.NoError(t, err)
		first.State = booking.StatePaymentFailed
		first.Rooms[room.TypeDeluxe] = 99

		second, err := store.Find(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateRoomSelection, second.State)
		assert.Equal(t, 1, second.Rooms[room.TypeDeluxe])
	})

	t.Run("missing key reports not found", func(t *testing.T) {
		store := snapshot.NewMemoryStore()

		_, err := store.Find(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("delete removes the snapshot", func(t *testing.T) {
		store := snapshot.NewMemoryStore()
		flowID := uuid.New()
		require.NoError(t, store.Save(ctx, flowID, sampleSnapshot(flowID)))

		require.NoError(t, store.Delete(ctx, flowID))
		_, err := store.Find(ctx, flowID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("delete of a missing key is a no-op", func(t *testing.T) {
		store := snapshot.NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, uuid.New()))
	})
}
