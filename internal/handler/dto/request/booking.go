package request

import (
	"strings"
	"time"

	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/domain/stay"
)

type IntakeRequest struct {
	GuestName      string    `json:"guest_name" binding:"required"`
	Email          string    `json:"email" binding:"required"`
	Phone          string    `json:"phone" binding:"required"`
	CheckIn        time.Time `json:"check_in" binding:"required"`
	CheckOut       time.Time `json:"check_out" binding:"required"`
	Adults         int       `json:"adults" binding:"required"`
	Children       int       `json:"children"`
	SpecialRequest string    `json:"special_request"`
}

func (r IntakeRequest) ToInput() stay.Input {
	return stay.Input{
		GuestName:      strings.TrimSpace(r.GuestName),
		Email:          strings.TrimSpace(r.Email),
		Phone:          strings.TrimSpace(r.Phone),
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		Adults:         r.Adults,
		Children:       r.Children,
		SpecialRequest: strings.TrimSpace(r.SpecialRequest),
	}
}

// SelectRoomsRequest carries per-type counts, e.g. {"deluxe": 2, "family": 1}.
type SelectRoomsRequest struct {
	Rooms map[string]int `json:"rooms" binding:"required"`
}

func (r SelectRoomsRequest) Quantities() map[room.TypeID]int {
	quantities := make(map[room.TypeID]int, len(r.Rooms))
	for id, qty := range r.Rooms {
		quantities[room.TypeID(id)] = qty
	}
	return quantities
}
