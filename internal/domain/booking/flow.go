package booking

import (
	"errors"
	"fmt"
)

// The booking flow is a linear state machine threading intake data through
// room selection into payment. Transitions are pure functions of
// (current state, event); side effects happen in the usecase layer around
// the transition, and a snapshot is persisted after every successful one.

type State string

const (
	StateIntake           State = "intake"
	StateRoomSelection    State = "room_selection"
	StatePaymentPending   State = "payment_pending"
	StatePaymentConfirmed State = "payment_confirmed"
	StatePaymentFailed    State = "payment_failed"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	return s == StatePaymentConfirmed || s == StatePaymentFailed
}

var (
	ErrAuthRequired   = errors.New("authentication required")
	ErrNothingToPay   = errors.New("quote total must be positive")
	ErrFlowTerminated = errors.New("booking flow already terminated")
)

type InvalidTransitionError struct {
	From  State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s in state %s", e.Event.name(), e.From)
}

type Event interface {
	name() string
}

// IntakeSubmitted fires on a valid stay request. The flow only advances for
// an authenticated session; otherwise it stays at intake and the caller
// diverts to auth, re-entering intake on return.
type IntakeSubmitted struct {
	Authenticated bool
}

// ReservationCreated fires after the reservation record was stored with the
// quoted total. A zero total never reaches the backend.
type ReservationCreated struct {
	QuoteTotal int64
}

// PaymentVerified fires when a verify call reports success for the flow's
// reservation.
type PaymentVerified struct{}

// PaymentDeclined fires on an explicit verify failure or an abandoned
// redirect.
type PaymentDeclined struct{}

func (IntakeSubmitted) name() string    { return "intake_submitted" }
func (ReservationCreated) name() string { return "reservation_created" }
func (PaymentVerified) name() string    { return "payment_verified" }
func (PaymentDeclined) name() string    { return "payment_declined" }

// Transition applies an event to a state. On error the returned state equals
// the input state: the machine never leaves a valid, resumable position.
func Transition(from State, event Event) (State, error) {
	if from.IsTerminal() {
		return from, ErrFlowTerminated
	}

	switch e := event.(type) {
	case IntakeSubmitted:
		if from != StateIntake {
			return from, &InvalidTransitionError{From: from, Event: event}
		}
		if !e.Authenticated {
			return from, ErrAuthRequired
		}
		return StateRoomSelection, nil

	case ReservationCreated:
		if from != StateRoomSelection {
			return from, &InvalidTransitionError{From: from, Event: event}
		}
		if e.QuoteTotal <= 0 {
			return from, ErrNothingToPay
		}
		return StatePaymentPending, nil

	case PaymentVerified:
		if from != StatePaymentPending {
			return from, &InvalidTransitionError{From: from, Event: event}
		}
		return StatePaymentConfirmed, nil

	case PaymentDeclined:
		if from != StatePaymentPending {
			return from, &InvalidTransitionError{From: from, Event: event}
		}
		return StatePaymentFailed, nil

	default:
		return from, &InvalidTransitionError{From: from, Event: event}
	}
}
