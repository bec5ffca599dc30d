//go:build unit

package builder

import (
	"time"

	"cappa-booking/internal/domain/stay"
)

type StayBuilder struct {
	GuestName      string
	Email          string
	Phone          string
	CheckIn        time.Time
	CheckOut       time.Time
	Adults         int
	Children       int
	SpecialRequest string
}

func NewStayBuilder() *StayBuilder {
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	return &StayBuilder{
		GuestName: "Adaeze Obi",
		Email:     "adaeze@example.com",
		Phone:     "08012345678",
		CheckIn:   checkIn,
		CheckOut:  checkIn.Add(48 * time.Hour),
		Adults:    2,
		Children:  0,
	}
}

func (b *StayBuilder) With(mutate func(*StayBuilder)) *StayBuilder {
	mutate(b)
	return b
}

func (b *StayBuilder) Input() stay.Input {
	return stay.Input{
		GuestName:      b.GuestName,
		Email:          b.Email,
		Phone:          b.Phone,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Adults:         b.Adults,
		Children:       b.Children,
		SpecialRequest: b.SpecialRequest,
	}
}

func (b *StayBuilder) BuildDomain() (*stay.Stay, error) {
	return stay.New(b.Input())
}
