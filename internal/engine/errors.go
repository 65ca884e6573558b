package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateFlightNumber is returned when adding a flight whose number is taken.
	ErrDuplicateFlightNumber = errors.New("flight number already exists")

	// ErrFlightNotFound is returned when a flight number does not resolve to a
	// flight usable by the operation (for bookings that includes inactive flights).
	ErrFlightNotFound = errors.New("flight not found")

	// ErrOrderNotFound is returned when an order does not exist or is not in a
	// refundable state.
	ErrOrderNotFound = errors.New("order not found or cannot be refunded")

	// ErrCustomerNotFound is returned when a customer id does not resolve.
	ErrCustomerNotFound = errors.New("customer not found")
)

// InsufficientSeatsError is returned when a booking asks for more seats than
// the flight has left. Alternatives lists other active flights on the same
// route that could take the whole party.
type InsufficientSeatsError struct {
	FlightNumber string
	Requested    int
	Available    int
	Alternatives []string
}

func (e *InsufficientSeatsError) Error() string {
	msg := "not enough available seats"
	if len(e.Alternatives) > 0 {
		msg += ", alternative flights available: " + strings.Join(e.Alternatives, ", ")
	}
	return fmt.Sprintf("%s (requested %d, available %d on %s)",
		msg, e.Requested, e.Available, e.FlightNumber)
}
