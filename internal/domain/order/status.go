package order

import "errors"

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// transitions is the full state machine: forward-only fulfilment stages,
// with cancellation allowed from every non-terminal state. Delivered and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", ErrInvalidStatusTransition
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates and performs a status change. An illegal request
// is a caller bug, reported as ErrInvalidStatusTransition.
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, ErrInvalidStatusTransition
	}
	return next, nil
}
