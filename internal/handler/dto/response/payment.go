package response

import (
	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type InitiationResponse struct {
	Gateway     string `json:"gateway"`
	CheckoutURL string `json:"checkoutUrl"`
	Reference   string `json:"reference"`
}

type VerificationResponse struct {
	ReservationID uuid.UUID       `json:"reservationId"`
	State         string          `json:"state"`
	Record        *booking.Record `json:"record,omitempty"`
}

func FromInitiationResult(result *commands.InitiationResult) *InitiationResponse {
	return &InitiationResponse{
		Gateway:     result.Gateway,
		CheckoutURL: result.CheckoutURL,
		Reference:   result.Reference,
	}
}

func FromVerificationOutcome(outcome *commands.VerificationOutcome) *VerificationResponse {
	return &VerificationResponse{
		ReservationID: outcome.ReservationID,
		State:         string(outcome.State),
		Record:        outcome.Record,
	}
}
