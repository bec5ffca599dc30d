package room

import "errors"

var ErrNegativeQuantity = errors.New("room quantity cannot be negative")

// Selection maps room types to requested quantities. Mutated incrementally by
// user actions; each decrement clamps at zero.
type Selection struct {
	counts map[TypeID]int
}

func NewSelection() *Selection {
	return &Selection{counts: make(map[TypeID]int)}
}

// SelectionFromQuantities validates a raw quantity map, e.g. from a request
// body or a restored snapshot.
func SelectionFromQuantities(quantities map[TypeID]int) (*Selection, error) {
	counts := make(map[TypeID]int, len(quantities))
	for id, qty := range quantities {
		if qty < 0 {
			return nil, ErrNegativeQuantity
		}
		if qty > 0 {
			counts[id] = qty
		}
	}
	return &Selection{counts: counts}, nil
}

func (s *Selection) Increment(id TypeID) {
	s.counts[id]++
}

// Decrement never goes below zero.
func (s *Selection) Decrement(id TypeID) {
	if s.counts[id] > 0 {
		s.counts[id]--
	}
	if s.counts[id] == 0 {
		delete(s.counts, id)
	}
}

func (s *Selection) Quantity(id TypeID) int {
	return s.counts[id]
}

func (s *Selection) TotalQuantity() int {
	total := 0
	for _, qty := range s.counts {
		total += qty
	}
	return total
}

func (s *Selection) IsEmpty() bool {
	return s.TotalQuantity() == 0
}

// Quantities returns a copy of the non-zero entries.
func (s *Selection) Quantities() map[TypeID]int {
	out := make(map[TypeID]int, len(s.counts))
	for id, qty := range s.counts {
		out[id] = qty
	}
	return out
}
