package commands

import (
	"context"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *booking.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	Update(ctx context.Context, res *booking.Reservation) error
}

// SnapshotStore persists in-progress flow snapshots, keyed by flow id before
// a reservation exists and by reservation id afterwards.
type SnapshotStore interface {
	Save(ctx context.Context, key uuid.UUID, snap *booking.Snapshot) error
	Find(ctx context.Context, key uuid.UUID) (*booking.Snapshot, error)
	Delete(ctx context.Context, key uuid.UUID) error
}

// GatewayInitiation is the opaque checkout hand-off from a payment provider.
type GatewayInitiation struct {
	CheckoutURL string
	Reference   string
}

// GatewayVerification is the provider's answer for a returned reference.
type GatewayVerification struct {
	Reference     string
	ReservationID uuid.UUID
	Paid          bool
	Amount        int64
	RawStatus     string
}

type InitiateParams struct {
	ReservationID uuid.UUID
	Email         string
	Amount        int64
}

// PaymentGateway is a hosted-checkout provider (Paystack, Flutterwave).
type PaymentGateway interface {
	Name() string
	Initialize(ctx context.Context, params InitiateParams) (*GatewayInitiation, error)
	Verify(ctx context.Context, reference string) (*GatewayVerification, error)
}

// GatewayResolver maps a gateway name from the URL to its client.
type GatewayResolver interface {
	Resolve(name string) (PaymentGateway, bool)
}

// Mailer delivers account verification codes out of band.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
