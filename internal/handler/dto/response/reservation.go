package response

import (
	"time"

	"cappa-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID               uuid.UUID            `json:"id"`
	GuestName        string               `json:"guestName"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	CheckIn          time.Time            `json:"checkIn"`
	CheckOut         time.Time            `json:"checkOut"`
	Adults           int                  `json:"adults"`
	Children         int                  `json:"children"`
	SpecialRequest   *string              `json:"specialRequest,omitempty"`
	RoomAllocations  []AllocationResponse `json:"roomAllocations"`
	Nights           int                  `json:"nights"`
	TotalPrice       int64                `json:"totalPrice"`
	PaymentStatus    string               `json:"paymentStatus"`
	PaymentReference *string              `json:"paymentReference,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

type AllocationResponse struct {
	RoomType     string `json:"roomType"`
	RoomName     string `json:"roomName"`
	Quantity     int    `json:"quantity"`
	NightlyPrice int64  `json:"nightlyPrice"`
}

type ReservationListResponse struct {
	ID            uuid.UUID `json:"id"`
	GuestName     string    `json:"guestName"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Nights        int       `json:"nights"`
	TotalPrice    int64     `json:"totalPrice"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromReservationListItems(rms []*queries.ReservationListItem) []ReservationListResponse {
	out := make([]ReservationListResponse, 0, len(rms))
	for _, rm := range rms {
		var resp ReservationListResponse
		_ = copier.Copy(&resp, rm)
		out = append(out, resp)
	}
	return out
}
