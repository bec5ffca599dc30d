package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationFinal    = errors.New("reservation is cancelled or refunded")

	// Booking flow errors
	ErrFlowNotFound   = errors.New("booking flow not found")
	ErrEmptySelection = errors.New("no rooms selected")
	ErrStaleSnapshot  = errors.New("stale booking snapshot")

	// Payment errors
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrReferenceMissing    = errors.New("payment reference missing")
	ErrUnsupportedGateway  = errors.New("unsupported payment gateway")
	ErrReservationNotOwned = errors.New("reservation does not belong to user")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
