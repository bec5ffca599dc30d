package commands

import (
	"context"
	"time"

	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"
	"cappa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

// ModifyInput carries the changeable stay parameters; nil fields keep the
// stored value.
type ModifyInput struct {
	CheckIn        *time.Time
	CheckOut       *time.Time
	Adults         *int
	Children       *int
	SpecialRequest *string
}

type ReservationCommands interface {
	Cancel(ctx context.Context, userID, reservationID uuid.UUID) error
	Modify(ctx context.Context, userID, reservationID uuid.UUID, in ModifyInput) error
}

type reservationCommandsImpl struct {
	reservations ReservationRepository
	snapshots    SnapshotStore
	catalog      room.Catalog
}

func NewReservationCommands(reservations ReservationRepository, snapshots SnapshotStore, catalog room.Catalog) ReservationCommands {
	return &reservationCommandsImpl{
		reservations: reservations,
		snapshots:    snapshots,
		catalog:      catalog,
	}
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, userID, reservationID uuid.UUID) error {
	res, err := r.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	if res.UserID() != userID {
		return errs.ErrReservationNotOwned
	}

	if err := res.Cancel(); err != nil {
		return err
	}
	if err := r.reservations.Update(ctx, res); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// A cancelled reservation has no resumable flow.
	_ = r.snapshots.Delete(ctx, res.ID())
	return nil
}

// Modify replaces the stay parameters and reprices against the catalog. The
// full set is re-validated, so a partial change cannot produce an invalid
// stay.
func (r *reservationCommandsImpl) Modify(ctx context.Context, userID, reservationID uuid.UUID, in ModifyInput) error {
	res, err := r.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	if res.UserID() != userID {
		return errs.ErrReservationNotOwned
	}

	input := stay.Input{
		GuestName:      res.GuestName(),
		Email:          res.Email(),
		Phone:          res.Phone(),
		CheckIn:        res.CheckIn(),
		CheckOut:       res.CheckOut(),
		Adults:         res.Adults(),
		Children:       res.Children(),
		SpecialRequest: res.SpecialRequest(),
	}
	if in.CheckIn != nil {
		input.CheckIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		input.CheckOut = *in.CheckOut
	}
	if in.Adults != nil {
		input.Adults = *in.Adults
	}
	if in.Children != nil {
		input.Children = *in.Children
	}
	if in.SpecialRequest != nil {
		input.SpecialRequest = *in.SpecialRequest
	}

	s, err := stay.New(input)
	if err != nil {
		return err
	}

	if err := res.Modify(s, r.catalog); err != nil {
		return err
	}
	if err := r.reservations.Update(ctx, res); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
