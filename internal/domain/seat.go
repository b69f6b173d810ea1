package domain

// Seat is one seat on one flight. Held is true iff a CONFIRMED booking
// currently references (FlightNumber, SeatNumber).
type Seat struct {
	SeatNumber   string
	FlightNumber string
	Held         bool
}
