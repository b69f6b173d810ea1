package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooker/internal/domain"
)

// MemoryStore keeps bookings and the seat ledger in mutex-guarded maps. Every
// mutation runs check-then-act under the single lock, which gives it the same
// all-or-nothing and race-exclusivity guarantees as the postgres transactions.
// It backs tests and local runs without a database.
type MemoryStore struct {
	mu        sync.Mutex
	bookings  map[string]domain.Booking
	held      map[string]map[string]bool // flight -> seat -> held
	seatOrder map[string][]string        // flight -> seats in map order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings:  make(map[string]domain.Booking),
		held:      make(map[string]map[string]bool),
		seatOrder: make(map[string][]string),
	}
}

// AddFlightSeats registers a flight's seat map with every seat free.
func (s *MemoryStore) AddFlightSeats(flightNumber string, seatNumbers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[flightNumber] == nil {
		s.held[flightNumber] = make(map[string]bool)
	}
	for _, seat := range seatNumbers {
		if _, ok := s.held[flightNumber][seat]; !ok {
			s.held[flightNumber][seat] = false
			s.seatOrder[flightNumber] = append(s.seatOrder[flightNumber], seat)
		}
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) ByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *MemoryStore) Create(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; ok {
		return domain.ErrDuplicateID
	}
	seats := s.held[booking.FlightNumber]
	if seats == nil {
		seats = make(map[string]bool)
		s.held[booking.FlightNumber] = seats
	}
	if seats[booking.SeatNumber] {
		return domain.ErrSeatTaken
	}
	seats[booking.SeatNumber] = true
	booking.Status = domain.BookingStatusConfirmed
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	wasConfirmed := b.Status == domain.BookingStatusConfirmed
	b.Status = domain.BookingStatusCancelled
	s.bookings[id] = b
	// A CANCELLED booking no longer owns its seat; releasing again could free
	// a seat another booking has claimed since.
	if wasConfirmed {
		if seats, ok := s.held[b.FlightNumber]; ok {
			seats[b.SeatNumber] = false
		}
	}
	return &b, nil
}

func (s *MemoryStore) UpdateSeat(ctx context.Context, id, newSeat string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status == domain.BookingStatusConfirmed {
		seats := s.held[b.FlightNumber]
		if seats == nil {
			seats = make(map[string]bool)
			s.held[b.FlightNumber] = seats
		}
		oldSeat := b.SeatNumber
		if seats[newSeat] && newSeat != oldSeat {
			return nil, domain.ErrSeatTaken
		}
		seats[oldSeat] = false
		seats[newSeat] = true
	}
	b.SeatNumber = newSeat
	s.bookings[id] = b
	return &b, nil
}

func (s *MemoryStore) IsHeld(ctx context.Context, flightNumber, seatNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[flightNumber][seatNumber], nil
}

func (s *MemoryStore) SetHeld(ctx context.Context, flightNumber, seatNumber string, held bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seats, ok := s.held[flightNumber]; ok {
		if _, ok := seats[seatNumber]; ok {
			seats[seatNumber] = held
		}
	}
	return nil
}

func (s *MemoryStore) AvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats := make([]domain.Seat, 0)
	for _, seat := range s.seatOrder[flightNumber] {
		if !s.held[flightNumber][seat] {
			seats = append(seats, domain.Seat{SeatNumber: seat, FlightNumber: flightNumber, Held: false})
		}
	}
	return seats, nil
}

func (s *MemoryStore) Exists(ctx context.Context, flightNumber, seatNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.held[flightNumber][seatNumber]
	return ok, nil
}

var (
	_ BookingRepository = (*MemoryStore)(nil)
	_ SeatRepository    = (*MemoryStore)(nil)
)
