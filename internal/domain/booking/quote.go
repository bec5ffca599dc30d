package booking

import (
	"cappa-booking/internal/domain/room"
)

// LineItem is one priced row of a quote.
type LineItem struct {
	RoomType     room.TypeID
	RoomName     string
	Quantity     int
	NightlyPrice int64
	Amount       int64
}

// Quote is the derived price breakdown. It is a client-facing estimate; the
// reservation record recomputes the authoritative total from the catalog.
type Quote struct {
	LineItems   []LineItem
	Nights      int
	TotalAmount int64
}

// BuildQuote prices a selection against the catalog for the given stay length.
// Pure and deterministic: identical inputs yield identical quotes, with line
// items in catalog order. Nights below 1 are priced as 1.
//
// The total is quantity x nightly price summed over line items, multiplied by
// nights exactly once. One superseded revision of the flow multiplied by
// nights a second time at the payment step; that was a defect, not a pricing
// rule.
func BuildQuote(sel *room.Selection, nights int, catalog room.Catalog) Quote {
	if nights < 1 {
		nights = 1
	}

	var items []LineItem
	var total int64
	for _, entry := range catalog.Entries() {
		qty := sel.Quantity(entry.ID())
		if qty == 0 {
			continue
		}
		amount := entry.NightlyPrice() * int64(qty) * int64(nights)
		items = append(items, LineItem{
			RoomType:     entry.ID(),
			RoomName:     entry.Name(),
			Quantity:     qty,
			NightlyPrice: entry.NightlyPrice(),
			Amount:       amount,
		})
		total += amount
	}

	return Quote{
		LineItems:   items,
		Nights:      nights,
		TotalAmount: total,
	}
}
