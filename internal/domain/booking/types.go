package booking

// PaymentStatus is the backend-authoritative payment state of a reservation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled, PaymentRefunded:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further payment action applies.
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentCancelled || s == PaymentRefunded
}
