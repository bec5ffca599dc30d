//go:build unit

package commands_test

import (
	"context"
	"testing"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/usecase/commands"
	"cappa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingCommands(repo *fakeReservationRepo, store *fakeSnapshotStore) commands.BookingCommands {
	return commands.NewBookingCommands(repo, store, room.DefaultCatalog(), clock.NewMockClock(testNow))
}

func TestSubmitIntake(t *testing.T) {
	ctx := context.Background()

	t.Run("advances to room selection and persists a snapshot", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)

		result, err := cmds.SubmitIntake(ctx, uuid.New(), builder.NewStayBuilder().Input())
		require.NoError(t, err)

		assert.Equal(t, booking.StateRoomSelection, result.State)
		assert.Equal(t, 2, result.Nights)
		assert.Equal(t, "Adaeze Obi", result.Stay.GuestName)

		snap, err := store.Find(ctx, result.FlowID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateRoomSelection, snap.State)
		assert.Equal(t, testNow, snap.UpdatedAt)
	})

	t.Run("unauthenticated session is diverted to auth", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)

		_, err := cmds.SubmitIntake(ctx, uuid.Nil, builder.NewStayBuilder().Input())
		require.ErrorIs(t, err, booking.ErrAuthRequired)
		assert.Empty(t, store.items, "nothing persisted before auth")
	})

	t.Run("invalid stay reports field errors before any state change", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)

		in := builder.NewStayBuilder().With(func(b *builder.StayBuilder) {
			b.Email = "not-an-email"
		}).Input()
		_, err := cmds.SubmitIntake(ctx, uuid.New(), in)

		var ve stay.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Empty(t, store.items)
	})

	t.Run("snapshot store failure", func(t *testing.T) {
		store := newFakeSnapshotStore()
		store.saveErr = errs.New("redis down")
		cmds := newBookingCommands(newFakeReservationRepo(), store)

		_, err := cmds.SubmitIntake(ctx, uuid.New(), builder.NewStayBuilder().Input())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}

func TestPreviewQuote(t *testing.T) {
	ctx := context.Background()

	startFlow := func(t *testing.T, cmds commands.BookingCommands) uuid.UUID {
		t.Helper()
		result, err := cmds.SubmitIntake(ctx, uuid.New(), builder.NewStayBuilder().Input())
		require.NoError(t, err)
		return result.FlowID
	}

	t.Run("prices the selection for the snapshot's stay length", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())
		flowID := startFlow(t, cmds)

		quote, err := cmds.PreviewQuote(ctx, flowID, map[room.TypeID]int{room.TypeDeluxe: 2})
		require.NoError(t, err)

		assert.Equal(t, 2, quote.Nights)
		assert.Equal(t, int64(660000), quote.TotalAmount)
	})

	t.Run("empty selection quotes zero", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())
		flowID := startFlow(t, cmds)

		quote, err := cmds.PreviewQuote(ctx, flowID, nil)
		require.NoError(t, err)
		assert.Zero(t, quote.TotalAmount)
	})

	t.Run("unknown flow", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())

		_, err := cmds.PreviewQuote(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, errs.ErrFlowNotFound)
	})

	t.Run("negative quantity", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())
		flowID := startFlow(t, cmds)

		_, err := cmds.PreviewQuote(ctx, flowID, map[room.TypeID]int{room.TypeDeluxe: -1})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestSelectRooms(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	startFlow := func(t *testing.T, cmds commands.BookingCommands) uuid.UUID {
		t.Helper()
		result, err := cmds.SubmitIntake(ctx, userID, builder.NewStayBuilder().Input())
		require.NoError(t, err)
		return result.FlowID
	}

	t.Run("creates the reservation and re-keys the snapshot", func(t *testing.T) {
		repo := newFakeReservationRepo()
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(repo, store)
		flowID := startFlow(t, cmds)

		result, err := cmds.SelectRooms(ctx, userID, flowID, map[room.TypeID]int{room.TypeDeluxe: 2})
		require.NoError(t, err)

		assert.Equal(t, booking.StatePaymentPending, result.State)
		assert.Equal(t, int64(660000), result.Quote.TotalAmount)

		res, err := repo.FindByID(ctx, result.ReservationID)
		require.NoError(t, err)
		assert.Equal(t, userID, res.UserID())
		assert.Equal(t, int64(660000), res.TotalPrice())
		assert.True(t, res.CreatedAt().Equal(testNow), "creation time stamped for the insert")

		snap, err := store.Find(ctx, result.ReservationID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatePaymentPending, snap.State)
		assert.Equal(t, result.ReservationID, snap.ReservationID)
		require.NotNil(t, snap.Record)
		assert.Equal(t, int64(660000), snap.Record.TotalPrice)

		_, err = store.Find(ctx, flowID)
		assert.Error(t, err, "flow-keyed copy is superseded")
	})

	t.Run("unknown flow", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())

		_, err := cmds.SelectRooms(ctx, userID, uuid.New(), map[room.TypeID]int{room.TypeDeluxe: 1})
		assert.ErrorIs(t, err, errs.ErrFlowNotFound)
	})

	t.Run("flow not at room selection", func(t *testing.T) {
		repo := newFakeReservationRepo()
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(repo, store)
		flowID := startFlow(t, cmds)

		result, err := cmds.SelectRooms(ctx, userID, flowID, map[room.TypeID]int{room.TypeDeluxe: 1})
		require.NoError(t, err)

		_, err = cmds.SelectRooms(ctx, userID, result.ReservationID, map[room.TypeID]int{room.TypeDeluxe: 1})
		var invalid *booking.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, booking.StatePaymentPending, invalid.From)
	})

	t.Run("empty selection", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())
		flowID := startFlow(t, cmds)

		_, err := cmds.SelectRooms(ctx, userID, flowID, nil)
		assert.ErrorIs(t, err, booking.ErrEmptySelection)
	})

	t.Run("unknown room type", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())
		flowID := startFlow(t, cmds)

		_, err := cmds.SelectRooms(ctx, userID, flowID, map[room.TypeID]int{room.TypeID("penthouse"): 1})
		assert.ErrorIs(t, err, booking.ErrUnknownRoomType)
	})

	t.Run("store failure keeps the flow at room selection", func(t *testing.T) {
		repo := newFakeReservationRepo()
		repo.createErr = errs.New("db down")
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(repo, store)
		flowID := startFlow(t, cmds)

		_, err := cmds.SelectRooms(ctx, userID, flowID, map[room.TypeID]int{room.TypeDeluxe: 1})
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)

		snap, err := store.Find(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateRoomSelection, snap.State, "retry stays possible")
	})
}

func TestResumeFlow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("resumes by flow id before a reservation exists", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)
		result, err := cmds.SubmitIntake(ctx, userID, builder.NewStayBuilder().Input())
		require.NoError(t, err)

		snap, err := cmds.ResumeFlow(ctx, userID, result.FlowID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateRoomSelection, snap.State)
	})

	t.Run("resumes by reservation id after selection", func(t *testing.T) {
		repo := newFakeReservationRepo()
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(repo, store)
		intake, err := cmds.SubmitIntake(ctx, userID, builder.NewStayBuilder().Input())
		require.NoError(t, err)
		selection, err := cmds.SelectRooms(ctx, userID, intake.FlowID, map[room.TypeID]int{room.TypeDeluxe: 1})
		require.NoError(t, err)

		snap, err := cmds.ResumeFlow(ctx, userID, selection.ReservationID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatePaymentPending, snap.State)
	})

	t.Run("another user's reservation stays hidden", func(t *testing.T) {
		repo := newFakeReservationRepo()
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(repo, store)
		intake, err := cmds.SubmitIntake(ctx, userID, builder.NewStayBuilder().Input())
		require.NoError(t, err)
		selection, err := cmds.SelectRooms(ctx, userID, intake.FlowID, map[room.TypeID]int{room.TypeDeluxe: 1})
		require.NoError(t, err)

		_, err = cmds.ResumeFlow(ctx, uuid.New(), selection.ReservationID)
		assert.ErrorIs(t, err, errs.ErrReservationNotOwned)
	})

	t.Run("snapshot without a backing reservation is discarded", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)
		key := uuid.New()
		require.NoError(t, store.Save(ctx, key, &booking.Snapshot{
			FlowID:        key,
			ReservationID: key,
			State:         booking.StatePaymentPending,
		}))

		_, err := cmds.ResumeFlow(ctx, userID, key)
		require.ErrorIs(t, err, errs.ErrStaleSnapshot)
		_, err = store.Find(ctx, key)
		assert.Error(t, err, "stale snapshot removed")
	})

	t.Run("snapshot keyed for a different reservation is stale", func(t *testing.T) {
		store := newFakeSnapshotStore()
		cmds := newBookingCommands(newFakeReservationRepo(), store)
		key := uuid.New()
		require.NoError(t, store.Save(ctx, key, &booking.Snapshot{
			FlowID:        uuid.New(),
			ReservationID: uuid.New(),
			State:         booking.StatePaymentPending,
		}))

		_, err := cmds.ResumeFlow(ctx, userID, key)
		assert.ErrorIs(t, err, errs.ErrStaleSnapshot)
	})

	t.Run("unknown key", func(t *testing.T) {
		cmds := newBookingCommands(newFakeReservationRepo(), newFakeSnapshotStore())

		_, err := cmds.ResumeFlow(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrFlowNotFound)
	})
}
