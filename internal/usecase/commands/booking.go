package commands

import (
	"context"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

// FlowResult is returned after the intake step; the flow id keys the snapshot
// until a reservation exists.
type FlowResult struct {
	FlowID uuid.UUID
	State  booking.State
	Stay   booking.StayData
	Nights int
}

// SelectionResult is returned once the reservation was created and the flow
// reached payment_pending.
type SelectionResult struct {
	ReservationID uuid.UUID
	State         booking.State
	Quote         booking.Quote
}

type BookingCommands interface {
	SubmitIntake(ctx context.Context, userID uuid.UUID, in stay.Input) (*FlowResult, error)
	PreviewQuote(ctx context.Context, flowID uuid.UUID, quantities map[room.TypeID]int) (*booking.Quote, error)
	SelectRooms(ctx context.Context, userID, flowID uuid.UUID, quantities map[room.TypeID]int) (*SelectionResult, error)
	ResumeFlow(ctx context.Context, userID, key uuid.UUID) (*booking.Snapshot, error)
}

type bookingCommandsImpl struct {
	reservations ReservationRepository
	snapshots    SnapshotStore
	catalog      room.Catalog
	clock        clock.Clock
}

func NewBookingCommands(
	reservations ReservationRepository,
	snapshots SnapshotStore,
	catalog room.Catalog,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		reservations: reservations,
		snapshots:    snapshots,
		catalog:      catalog,
		clock:        clk,
	}
}

// SubmitIntake validates the stay request and advances intake -> room
// selection. The raw input is rejected with field-scoped errors before any
// state changes.
func (b *bookingCommandsImpl) SubmitIntake(ctx context.Context, userID uuid.UUID, in stay.Input) (*FlowResult, error) {
	s, err := stay.New(in)
	if err != nil {
		return nil, err
	}

	state, err := booking.Transition(booking.StateIntake, booking.IntakeSubmitted{
		Authenticated: userID != uuid.Nil,
	})
	if err != nil {
		return nil, err
	}

	snap := &booking.Snapshot{
		FlowID:    uuid.New(),
		State:     state,
		Stay:      booking.StayDataFrom(s),
		UpdatedAt: b.clock.Now(),
	}
	if err := b.snapshots.Save(ctx, snap.FlowID, snap); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &FlowResult{
		FlowID: snap.FlowID,
		State:  state,
		Stay:   snap.Stay,
		Nights: s.Nights(),
	}, nil
}

// PreviewQuote reprices the current selection without advancing the flow.
// Incremental edits always succeed; an empty selection simply quotes zero.
func (b *bookingCommandsImpl) PreviewQuote(ctx context.Context, flowID uuid.UUID, quantities map[room.TypeID]int) (*booking.Quote, error) {
	snap, err := b.snapshots.Find(ctx, flowID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrFlowNotFound)
	}

	sel, err := room.SelectionFromQuantities(quantities)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	nights := stay.NightsBetween(snap.Stay.CheckIn, snap.Stay.CheckOut)
	quote := booking.BuildQuote(sel, nights, b.catalog)
	return &quote, nil
}

// SelectRooms fires room_selection -> payment_pending: it stores the
// reservation with the quoted total and re-keys the snapshot by the new
// reservation id. On any failure the flow stays at room selection.
func (b *bookingCommandsImpl) SelectRooms(ctx context.Context, userID, flowID uuid.UUID, quantities map[room.TypeID]int) (*SelectionResult, error) {
	snap, err := b.snapshots.Find(ctx, flowID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrFlowNotFound)
	}
	if snap.State != booking.StateRoomSelection {
		return nil, &booking.InvalidTransitionError{From: snap.State, Event: booking.ReservationCreated{}}
	}

	sel, err := room.SelectionFromQuantities(quantities)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	s := snap.Stay.ToStay()
	res, err := booking.NewReservation(userID, s, sel, b.catalog, b.clock.Now())
	if err != nil {
		return nil, err
	}
	quote := booking.BuildQuote(sel, s.Nights(), b.catalog)

	state, err := booking.Transition(snap.State, booking.ReservationCreated{QuoteTotal: quote.TotalAmount})
	if err != nil {
		return nil, err
	}

	// A creation failure surfaces to the user with a retry option; it is not
	// retried here and the snapshot keeps its room_selection state.
	if err := b.reservations.Create(ctx, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	snap.ReservationID = res.ID()
	snap.State = state
	snap.Rooms = sel.Quantities()
	snap.Record = res.ToRecord()
	snap.UpdatedAt = b.clock.Now()

	if err := b.snapshots.Save(ctx, res.ID(), snap); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	// The flow-keyed copy is superseded; best effort removal.
	_ = b.snapshots.Delete(ctx, flowID)

	return &SelectionResult{
		ReservationID: res.ID(),
		State:         state,
		Quote:         quote,
	}, nil
}

// ResumeFlow restores a snapshot after a reload or return redirect. The key
// is either the flow id (pre-reservation) or the reservation id; a snapshot
// recorded for a different reservation is stale and gets discarded.
func (b *bookingCommandsImpl) ResumeFlow(ctx context.Context, userID, key uuid.UUID) (*booking.Snapshot, error) {
	snap, err := b.snapshots.Find(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrFlowNotFound)
	}

	if snap.ReservationID != uuid.Nil && !snap.Matches(key) && snap.FlowID != key {
		_ = b.snapshots.Delete(ctx, key)
		return nil, errs.ErrStaleSnapshot
	}

	if snap.ReservationID != uuid.Nil {
		res, err := b.reservations.FindByID(ctx, snap.ReservationID)
		if err != nil {
			_ = b.snapshots.Delete(ctx, key)
			return nil, errs.Mark(err, errs.ErrStaleSnapshot)
		}
		if res.UserID() != userID {
			return nil, errs.ErrReservationNotOwned
		}
	}

	return snap, nil
}
