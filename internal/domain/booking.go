package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking links a customer to one seat on one flight. SeatNumber is the only
// field that changes while the booking is CONFIRMED; cancellation keeps the
// last seat number for audit but releases the hold.
type Booking struct {
	ID           string
	CreatedAt    time.Time
	Status       BookingStatus
	CustomerID   string
	FlightNumber string
	SeatNumber   string
}
