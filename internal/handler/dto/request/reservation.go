package request

import (
	"time"

	"cappa-booking/internal/usecase/commands"
)

type ModifyReservationRequest struct {
	CheckIn        *time.Time `json:"check_in,omitempty"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	Adults         *int       `json:"adults,omitempty"`
	Children       *int       `json:"children,omitempty"`
	SpecialRequest *string    `json:"special_request,omitempty"`
}

func (r ModifyReservationRequest) ToInput() commands.ModifyInput {
	return commands.ModifyInput{
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		Adults:         r.Adults,
		Children:       r.Children,
		SpecialRequest: r.SpecialRequest,
	}
}

type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}
