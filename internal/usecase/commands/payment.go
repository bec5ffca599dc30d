package commands

import (
	"context"
	"log/slog"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment_mock.go -package=commandsmock

// InitiationResult carries the checkout URL the browser must navigate to.
type InitiationResult struct {
	Gateway     string
	CheckoutURL string
	Reference   string
}

// VerifyParams are the recognized return-redirect query parameters.
// Paystack sends reference/trxref, Flutterwave sends transaction_id.
type VerifyParams struct {
	Reference     string
	TrxRef        string
	TransactionID string
}

// VerificationOutcome reports the reconciled reservation after a verify call.
type VerificationOutcome struct {
	ReservationID uuid.UUID
	State         booking.State
	Record        *booking.Record
}

type PaymentCommands interface {
	Initiate(ctx context.Context, userID, reservationID uuid.UUID, gatewayName string) (*InitiationResult, error)
	Verify(ctx context.Context, userID uuid.UUID, params VerifyParams) (*VerificationOutcome, error)
	RequestRefund(ctx context.Context, userID, reservationID uuid.UUID, reason string) error
}

type paymentCommandsImpl struct {
	reservations ReservationRepository
	snapshots    SnapshotStore
	gateways     GatewayResolver
	clock        clock.Clock
}

func NewPaymentCommands(
	reservations ReservationRepository,
	snapshots SnapshotStore,
	gateways GatewayResolver,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		reservations: reservations,
		snapshots:    snapshots,
		gateways:     gateways,
		clock:        clk,
	}
}

// Initiate records the pending hand-off in the snapshot before returning the
// checkout URL, so the return redirect can be reconciled even after a reload.
func (p *paymentCommandsImpl) Initiate(ctx context.Context, userID, reservationID uuid.UUID, gatewayName string) (*InitiationResult, error) {
	gw, ok := p.gateways.Resolve(gatewayName)
	if !ok {
		return nil, errs.ErrUnsupportedGateway
	}

	res, err := p.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReservationNotFound)
	}
	if res.UserID() != userID {
		return nil, errs.ErrReservationNotOwned
	}
	if res.PaymentStatus() != booking.PaymentPending {
		if res.PaymentStatus().IsFinal() {
			return nil, errs.ErrReservationFinal
		}
		return nil, booking.ErrAlreadyPaid
	}

	initiation, err := gw.Initialize(ctx, InitiateParams{
		ReservationID: res.ID(),
		Email:         res.Email(),
		Amount:        res.TotalPrice(),
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}

	snap, err := p.snapshots.Find(ctx, res.ID())
	if err != nil {
		// A missing snapshot is rebuilt from the authoritative record so a
		// deep link straight to payment still works.
		snap = &booking.Snapshot{
			FlowID:        res.ID(),
			ReservationID: res.ID(),
			State:         booking.StatePaymentPending,
			Rooms:         res.AllocationQuantities(),
			Record:        res.ToRecord(),
		}
	}
	// A decline is not terminal while the reservation is still pending:
	// re-opening checkout puts the flow back to awaiting payment, so the
	// next verify can confirm it.
	if snap.State == booking.StatePaymentFailed {
		snap.State = booking.StatePaymentPending
	}
	snap.Gateway = gw.Name()
	snap.PendingReference = initiation.Reference
	snap.UpdatedAt = p.clock.Now()
	if err := p.snapshots.Save(ctx, res.ID(), snap); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &InitiationResult{
		Gateway:     gw.Name(),
		CheckoutURL: initiation.CheckoutURL,
		Reference:   initiation.Reference,
	}, nil
}

// Verify reconciles a return redirect. Idempotent: re-verifying a settled
// reference reports the stored outcome again.
func (p *paymentCommandsImpl) Verify(ctx context.Context, userID uuid.UUID, params VerifyParams) (*VerificationOutcome, error) {
	gatewayName, reference := recognizeReference(params)
	if reference == "" {
		// Unknown status, not a failure: nothing to verify against.
		return nil, errs.ErrReferenceMissing
	}

	gw, ok := p.gateways.Resolve(gatewayName)
	if !ok {
		return nil, errs.ErrUnsupportedGateway
	}

	verification, err := gw.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	res, err := p.reservations.FindByID(ctx, verification.ReservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReservationNotFound)
	}
	if res.UserID() != userID {
		return nil, errs.ErrReservationNotOwned
	}

	snap, snapErr := p.snapshots.Find(ctx, res.ID())
	if snapErr == nil {
		// Reconcile by reservation id and pending reference; a mismatched
		// snapshot is discarded, never silently reused.
		if !snap.Matches(res.ID()) ||
			(snap.PendingReference != "" && snap.PendingReference != verification.Reference) {
			_ = p.snapshots.Delete(ctx, res.ID())
			return nil, errs.ErrStaleSnapshot
		}
	} else {
		snap = &booking.Snapshot{
			FlowID:        res.ID(),
			ReservationID: res.ID(),
			State:         booking.StatePaymentPending,
			Rooms:         res.AllocationQuantities(),
		}
	}

	if !verification.Paid {
		state, terr := booking.Transition(snap.State, booking.PaymentDeclined{})
		if terr == nil {
			snap.State = state
			snap.Record = res.ToRecord()
			snap.UpdatedAt = p.clock.Now()
			if err := p.snapshots.Save(ctx, res.ID(), snap); err != nil {
				slog.Warn("failed to persist declined snapshot", "reservation_id", res.ID(), "error", err.Error())
			}
		}
		return nil, errs.Mark(errs.Newf("gateway status %q", verification.RawStatus), errs.ErrVerificationFailed)
	}

	if err := res.MarkPaid(verification.Reference); err != nil {
		return nil, err
	}
	if err := p.reservations.Update(ctx, res); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if state, terr := booking.Transition(snap.State, booking.PaymentVerified{}); terr == nil {
		snap.State = state
	} else if snap.State != booking.StatePaymentConfirmed {
		return nil, terr
	}

	// Overwrite the cached record with the verified one; no merging.
	snap.Record = res.ToRecord()
	snap.PendingReference = ""
	snap.UpdatedAt = p.clock.Now()
	if err := p.snapshots.Save(ctx, res.ID(), snap); err != nil {
		slog.Warn("failed to persist confirmed snapshot", "reservation_id", res.ID(), "error", err.Error())
	}

	return &VerificationOutcome{
		ReservationID: res.ID(),
		State:         snap.State,
		Record:        snap.Record,
	}, nil
}

func (p *paymentCommandsImpl) RequestRefund(ctx context.Context, userID, reservationID uuid.UUID, reason string) error {
	if reason == "" {
		return errs.Mark(errs.New("refund reason is required"), errs.ErrDomainValidation)
	}

	res, err := p.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	if res.UserID() != userID {
		return errs.ErrReservationNotOwned
	}

	if err := res.Refund(); err != nil {
		return err
	}
	if err := p.reservations.Update(ctx, res); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	_ = p.snapshots.Delete(ctx, res.ID())
	return nil
}

func recognizeReference(params VerifyParams) (gateway, reference string) {
	switch {
	case params.Reference != "":
		return "paystack", params.Reference
	case params.TrxRef != "":
		return "paystack", params.TrxRef
	case params.TransactionID != "":
		return "flutterwave", params.TransactionID
	default:
		return "", ""
	}
}
