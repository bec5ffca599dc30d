package booking

import (
	"errors"
	"time"

	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"

	"github.com/google/uuid"
)

var (
	ErrEmptySelection     = errors.New("at least one room must be selected")
	ErrUnknownRoomType    = errors.New("unknown room type")
	ErrReservationFinal   = errors.New("reservation is cancelled or refunded")
	ErrReservationNotPaid = errors.New("reservation has not been paid")
	ErrAlreadyPaid        = errors.New("reservation is already paid")
)

// Allocation is one room type line of a stored reservation.
type Allocation struct {
	RoomType     room.TypeID
	RoomName     string
	Quantity     int
	NightlyPrice int64
}

// Reservation is the server-assigned booking record. The total is recomputed
// here from the catalog; client-side quotes are estimates only.
type Reservation struct {
	id               uuid.UUID
	userID           uuid.UUID
	guestName        string
	email            string
	phone            string
	checkIn          time.Time
	checkOut         time.Time
	adults           int
	children         int
	specialRequest   string
	allocations      []Allocation
	nights           int
	totalPrice       int64
	paymentStatus    PaymentStatus
	paymentReference *string
	createdAt        time.Time
	updatedAt        time.Time
}

func NewReservation(userID uuid.UUID, s *stay.Stay, sel *room.Selection, catalog room.Catalog, now time.Time) (*Reservation, error) {
	if sel.IsEmpty() {
		return nil, ErrEmptySelection
	}
	for id := range sel.Quantities() {
		if _, ok := catalog.Lookup(id); !ok {
			return nil, ErrUnknownRoomType
		}
	}

	quote := BuildQuote(sel, s.Nights(), catalog)

	allocations := make([]Allocation, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		allocations = append(allocations, Allocation{
			RoomType:     item.RoomType,
			RoomName:     item.RoomName,
			Quantity:     item.Quantity,
			NightlyPrice: item.NightlyPrice,
		})
	}

	return &Reservation{
		id:             uuid.New(),
		userID:         userID,
		guestName:      s.GuestName(),
		email:          s.Email(),
		phone:          s.Phone(),
		checkIn:        s.CheckIn(),
		checkOut:       s.CheckOut(),
		adults:         s.Adults(),
		children:       s.Children(),
		specialRequest: s.SpecialRequest(),
		allocations:    allocations,
		nights:         quote.Nights,
		totalPrice:     quote.TotalAmount,
		paymentStatus:  PaymentPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructReservation(
	id, userID uuid.UUID,
	stayData StayData,
	allocations []Allocation,
	nights int,
	totalPrice int64,
	status PaymentStatus,
	paymentReference *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		userID:           userID,
		guestName:        stayData.GuestName,
		email:            stayData.Email,
		phone:            stayData.Phone,
		checkIn:          stayData.CheckIn,
		checkOut:         stayData.CheckOut,
		adults:           stayData.Adults,
		children:         stayData.Children,
		specialRequest:   stayData.SpecialRequest,
		allocations:      allocations,
		nights:           nights,
		totalPrice:       totalPrice,
		paymentStatus:    status,
		paymentReference: paymentReference,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// MarkPaid records a verified gateway reference. Idempotent for the same
// reference so repeated verify calls are safe.
func (r *Reservation) MarkPaid(reference string) error {
	if r.paymentStatus == PaymentPaid {
		if r.paymentReference != nil && *r.paymentReference == reference {
			return nil
		}
		return ErrAlreadyPaid
	}
	if r.paymentStatus.IsFinal() {
		return ErrReservationFinal
	}
	r.paymentStatus = PaymentPaid
	r.paymentReference = &reference
	return nil
}

func (r *Reservation) Cancel() error {
	if r.paymentStatus.IsFinal() {
		return ErrReservationFinal
	}
	r.paymentStatus = PaymentCancelled
	return nil
}

// Refund is only possible for a paid reservation.
func (r *Reservation) Refund() error {
	if r.paymentStatus.IsFinal() {
		return ErrReservationFinal
	}
	if r.paymentStatus != PaymentPaid {
		return ErrReservationNotPaid
	}
	r.paymentStatus = PaymentRefunded
	return nil
}

// Modify replaces the stay parameters and reprices the reservation against
// the catalog. Only pending reservations may be modified.
func (r *Reservation) Modify(s *stay.Stay, catalog room.Catalog) error {
	if r.paymentStatus != PaymentPending {
		if r.paymentStatus.IsFinal() {
			return ErrReservationFinal
		}
		return ErrAlreadyPaid
	}

	sel, err := room.SelectionFromQuantities(r.AllocationQuantities())
	if err != nil {
		return err
	}
	quote := BuildQuote(sel, s.Nights(), catalog)

	r.guestName = s.GuestName()
	r.email = s.Email()
	r.phone = s.Phone()
	r.checkIn = s.CheckIn()
	r.checkOut = s.CheckOut()
	r.adults = s.Adults()
	r.children = s.Children()
	r.specialRequest = s.SpecialRequest()
	r.nights = quote.Nights
	r.totalPrice = quote.TotalAmount
	return nil
}

func (r *Reservation) AllocationQuantities() map[room.TypeID]int {
	out := make(map[room.TypeID]int, len(r.allocations))
	for _, a := range r.allocations {
		out[a.RoomType] = a.Quantity
	}
	return out
}

// ToRecord produces the cached read-only copy threaded through flow snapshots.
func (r *Reservation) ToRecord() *Record {
	return &Record{
		ID:              r.id,
		PaymentStatus:   r.paymentStatus,
		TotalPrice:      r.totalPrice,
		RoomAllocations: r.AllocationQuantities(),
	}
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) GuestName() string            { return r.guestName }
func (r *Reservation) Email() string                { return r.email }
func (r *Reservation) Phone() string                { return r.phone }
func (r *Reservation) CheckIn() time.Time           { return r.checkIn }
func (r *Reservation) CheckOut() time.Time          { return r.checkOut }
func (r *Reservation) Adults() int                  { return r.adults }
func (r *Reservation) Children() int                { return r.children }
func (r *Reservation) SpecialRequest() string       { return r.specialRequest }
func (r *Reservation) Allocations() []Allocation    { return r.allocations }
func (r *Reservation) Nights() int                  { return r.nights }
func (r *Reservation) TotalPrice() int64            { return r.totalPrice }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) PaymentReference() *string    { return r.paymentReference }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
