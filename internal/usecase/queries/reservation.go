package queries

import (
	"context"
	"time"

	"cappa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../../tests/mock/queries/queries_mock.go -package=queriesmock cappa-booking/internal/usecase/queries ReservationQueries,UserQueries

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"user_id"`
	GuestName        string           `json:"guest_name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	CheckIn          time.Time        `json:"check_in"`
	CheckOut         time.Time        `json:"check_out"`
	Adults           int              `json:"adults"`
	Children         int              `json:"children"`
	SpecialRequest   *string          `json:"special_request,omitempty"`
	RoomAllocations  []AllocationView `json:"room_allocations"`
	Nights           int              `json:"nights"`
	TotalPrice       int64            `json:"total_price"`
	PaymentStatus    string           `json:"payment_status"`
	PaymentReference *string          `json:"payment_reference,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type AllocationView struct {
	RoomType     string `json:"room_type"`
	RoomName     string `json:"room_name"`
	Quantity     int    `json:"quantity"`
	NightlyPrice int64  `json:"nightly_price"`
}

type ReservationListItem struct {
	ID            uuid.UUID `json:"id"`
	GuestName     string    `json:"guest_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	TotalPrice    int64     `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Ownership is not disclosed: a foreign reservation reads as absent.
	if view.UserID != userID {
		return nil, errs.ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetHistory(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.store.FindByUserID(ctx, userID)
}
