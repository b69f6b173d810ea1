package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooker/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify customer %s: %s for flight %s seat %s\n", event.CustomerID, event.Type, event.FlightNumber, event.SeatNumber)
	return nil
}
