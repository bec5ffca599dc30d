package booking

import (
	"time"

	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"

	"github.com/google/uuid"
)

// Snapshot is the persisted copy of an in-progress flow, written after every
// successful transition so a reload or a return redirect from a gateway can
// resume without re-collecting prior steps. Keyed by the flow id until a
// reservation exists, then re-keyed by the reservation id.
type Snapshot struct {
	FlowID           uuid.UUID           `json:"flowId"`
	ReservationID    uuid.UUID           `json:"reservationId,omitempty"`
	State            State               `json:"state"`
	Stay             StayData            `json:"stay"`
	Rooms            map[room.TypeID]int `json:"rooms,omitempty"`
	Record           *Record             `json:"record,omitempty"`
	Gateway          string              `json:"gateway,omitempty"`
	PendingReference string              `json:"pendingReference,omitempty"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// StayData is the serialized form of a validated stay request.
type StayData struct {
	GuestName      string    `json:"guestName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	Adults         int       `json:"adults"`
	Children       int       `json:"children"`
	SpecialRequest string    `json:"specialRequest,omitempty"`
}

// Record is the cached read-only copy of a backend reservation, kept for
// display and payment-status reconciliation. Overwritten wholesale on
// verification, never merged.
type Record struct {
	ID              uuid.UUID           `json:"id"`
	PaymentStatus   PaymentStatus       `json:"paymentStatus"`
	TotalPrice      int64               `json:"totalPrice"`
	RoomAllocations map[room.TypeID]int `json:"roomAllocations,omitempty"`
}

func StayDataFrom(s *stay.Stay) StayData {
	in := s.Snapshot()
	return StayData{
		GuestName:      in.GuestName,
		Email:          in.Email,
		Phone:          in.Phone,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Adults:         in.Adults,
		Children:       in.Children,
		SpecialRequest: in.SpecialRequest,
	}
}

func (d StayData) ToStay() *stay.Stay {
	return stay.Reconstruct(stay.Input{
		GuestName:      d.GuestName,
		Email:          d.Email,
		Phone:          d.Phone,
		CheckIn:        d.CheckIn,
		CheckOut:       d.CheckOut,
		Adults:         d.Adults,
		Children:       d.Children,
		SpecialRequest: d.SpecialRequest,
	})
}

// Matches reports whether the snapshot belongs to the given reservation.
// A mismatch means the snapshot is stale and must be discarded, not reused.
func (s *Snapshot) Matches(reservationID uuid.UUID) bool {
	return s.ReservationID == reservationID
}

// Selection restores the room selection captured in the snapshot.
func (s *Snapshot) Selection() (*room.Selection, error) {
	return room.SelectionFromQuantities(s.Rooms)
}
