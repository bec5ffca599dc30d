package response

import (
	"time"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type FlowResponse struct {
	FlowID uuid.UUID        `json:"flowId"`
	State  string           `json:"state"`
	Stay   booking.StayData `json:"stay"`
	Nights int              `json:"nights"`
}

type QuoteResponse struct {
	LineItems   []LineItemResponse `json:"lineItems"`
	Nights      int                `json:"nights"`
	TotalAmount int64              `json:"totalAmount"`
}

type LineItemResponse struct {
	RoomType     string `json:"roomType"`
	RoomName     string `json:"roomName"`
	Quantity     int    `json:"quantity"`
	NightlyPrice int64  `json:"nightlyPrice"`
	Amount       int64  `json:"amount"`
}

type SelectionResponse struct {
	ReservationID uuid.UUID     `json:"reservationId"`
	State         string        `json:"state"`
	Quote         QuoteResponse `json:"quote"`
}

type SnapshotResponse struct {
	FlowID        uuid.UUID           `json:"flowId"`
	ReservationID uuid.UUID           `json:"reservationId,omitempty"`
	State         string              `json:"state"`
	Stay          booking.StayData    `json:"stay"`
	Rooms         map[room.TypeID]int `json:"rooms,omitempty"`
	Record        *booking.Record     `json:"record,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type RoomResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NightlyPrice int64    `json:"nightlyPrice"`
	Amenities    []string `json:"amenities"`
}

func FromFlowResult(result *commands.FlowResult) *FlowResponse {
	return &FlowResponse{
		FlowID: result.FlowID,
		State:  string(result.State),
		Stay:   result.Stay,
		Nights: result.Nights,
	}
}

func FromQuote(quote *booking.Quote) *QuoteResponse {
	items := make([]LineItemResponse, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		items = append(items, LineItemResponse{
			RoomType:     string(item.RoomType),
			RoomName:     item.RoomName,
			Quantity:     item.Quantity,
			NightlyPrice: item.NightlyPrice,
			Amount:       item.Amount,
		})
	}
	return &QuoteResponse{
		LineItems:   items,
		Nights:      quote.Nights,
		TotalAmount: quote.TotalAmount,
	}
}

func FromSelectionResult(result *commands.SelectionResult) *SelectionResponse {
	return &SelectionResponse{
		ReservationID: result.ReservationID,
		State:         string(result.State),
		Quote:         *FromQuote(&result.Quote),
	}
}

func FromSnapshot(snap *booking.Snapshot) *SnapshotResponse {
	return &SnapshotResponse{
		FlowID:        snap.FlowID,
		ReservationID: snap.ReservationID,
		State:         string(snap.State),
		Stay:          snap.Stay,
		Rooms:         snap.Rooms,
		Record:        snap.Record,
		UpdatedAt:     snap.UpdatedAt,
	}
}

func FromCatalog(catalog room.Catalog) []RoomResponse {
	entries := catalog.Entries()
	out := make([]RoomResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RoomResponse{
			ID:           string(entry.ID()),
			Name:         entry.Name(),
			NightlyPrice: entry.NightlyPrice(),
			Amenities:    entry.Amenities(),
		})
	}
	return out
}
