package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/Domenick1991/flightbooker/internal/kafka"
	"github.com/Domenick1991/flightbooker/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
	UpdateBooking(ctx context.Context, bookingID, newSeatNumber string) (*domain.Booking, error)
	GetAvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error)
	GetBookedSeat(ctx context.Context, bookingID string) (*domain.Seat, error)
	ViewBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	GetBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
}

// CustomerDirectory resolves customer ids. Only existence matters to the
// booking flow.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// FlightCatalog resolves flight numbers.
type FlightCatalog interface {
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightNumber, seatNumber string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightNumber, seatNumber string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService owns the booking lifecycle: CONFIRMED on create, CANCELLED
// on cancel, seat changes via reseat. Each mutation validates against the
// catalog, directory and ledger, then applies the booking write and the seat
// toggle through one atomic store call.
type BookingService struct {
	bookings           repository.BookingRepository
	seats              repository.SeatRepository
	customers          CustomerDirectory
	flights            FlightCatalog
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	lockTTL            time.Duration
}

type CreateBookingInput struct {
	CustomerID   string `json:"customer_id"`
	FlightNumber string `json:"flight_number"`
	SeatNumber   string `json:"seat_number"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	seats repository.SeatRepository,
	customers CustomerDirectory,
	flights FlightCatalog,
	cache Cache,
	producer Producer,
	bookingTopic string,
	lockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		seats:        seats,
		customers:    customers,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		lockTTL:      lockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking validates customer, flight and seat, then inserts the booking
// and claims the seat in one transaction. A racer that loses the seat gets a
// ValidationError, never a partial write.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("customer %q does not exist", input.CustomerID)
		}
		return nil, err
	}
	if _, err := s.flights.GetByNumber(ctx, input.FlightNumber); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("flight %q does not exist", input.FlightNumber)
		}
		return nil, err
	}
	if input.SeatNumber == "" {
		return nil, domain.NewValidationError("no seat selected")
	}

	// The ledger reports unknown seats as free, so seat existence is checked
	// against the flight's seat map first.
	exists, err := s.seats.Exists(ctx, input.FlightNumber, input.SeatNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewValidationError("seat %s is not on flight %s", input.SeatNumber, input.FlightNumber)
	}
	held, err := s.seats.IsHeld(ctx, input.FlightNumber, input.SeatNumber)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, domain.NewValidationError("seat %s is already booked", input.SeatNumber)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, input.FlightNumber, input.SeatNumber, s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewValidationError("seat %s is already booked", input.SeatNumber)
		}
		locked = true
	}
	defer func() {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, input.FlightNumber, input.SeatNumber)
		}
	}()

	booking := &domain.Booking{
		ID:           newBookingID(),
		CustomerID:   input.CustomerID,
		FlightNumber: input.FlightNumber,
		SeatNumber:   input.SeatNumber,
	}

	err = s.bookings.Create(ctx, booking)
	if errors.Is(err, domain.ErrDuplicateID) {
		// Random-suffix ids collide roughly never; one regenerate covers it,
		// a second collision means something is broken.
		booking.ID = newBookingID()
		err = s.bookings.Create(ctx, booking)
		if errors.Is(err, domain.ErrDuplicateID) {
			return nil, fmt.Errorf("booking id collision after retry: %w", err)
		}
	}
	if errors.Is(err, domain.ErrSeatTaken) {
		return nil, domain.NewValidationError("seat %s is already booked", input.SeatNumber)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// CancelBooking releases the seat and marks the booking CANCELLED as one
// unit. A missing booking is a normal false result; cancelling twice is
// idempotent and still returns true.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	cancelled, err := s.bookings.Cancel(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, cancelled.FlightNumber, cancelled.SeatNumber)
	}
	s.publish(ctx, "booking_cancelled", cancelled)
	return true, nil
}

// UpdateBooking moves the booking to newSeatNumber. Reseating onto the seat
// the booking already holds is a no-op success; the availability check would
// otherwise reject it, since the booking's own hold is not excluded.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, newSeatNumber string) (*domain.Booking, error) {
	if newSeatNumber == "" {
		return nil, domain.NewValidationError("no seat selected")
	}

	current, err := s.bookings.Get(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.NotFoundError{Entity: "booking", ID: bookingID}
	}
	if err != nil {
		return nil, err
	}
	if current.SeatNumber == newSeatNumber {
		return current, nil
	}

	exists, err := s.seats.Exists(ctx, current.FlightNumber, newSeatNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewValidationError("seat %s is not on flight %s", newSeatNumber, current.FlightNumber)
	}
	held, err := s.seats.IsHeld(ctx, current.FlightNumber, newSeatNumber)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, domain.NewValidationError("seat %s is already booked", newSeatNumber)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, current.FlightNumber, newSeatNumber, s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewValidationError("seat %s is already booked", newSeatNumber)
		}
		locked = true
	}
	defer func() {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, current.FlightNumber, newSeatNumber)
		}
	}()

	updated, err := s.bookings.UpdateSeat(ctx, bookingID, newSeatNumber)
	if errors.Is(err, domain.ErrSeatTaken) {
		return nil, domain.NewValidationError("seat %s is already booked", newSeatNumber)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.NotFoundError{Entity: "booking", ID: bookingID}
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_reseated", updated)
	return updated, nil
}

func (s *BookingService) GetAvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error) {
	return s.seats.AvailableSeats(ctx, flightNumber)
}

// GetBookedSeat derives the seat view from the booking record itself, without
// consulting the ledger. Returns nil when the booking does not exist.
func (s *BookingService) GetBookedSeat(ctx context.Context, bookingID string) (*domain.Seat, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Seat{SeatNumber: b.SeatNumber, FlightNumber: b.FlightNumber, Held: true}, nil
}

// ViewBooking returns nil when the booking does not exist.
func (s *BookingService) ViewBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (s *BookingService) GetBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return s.bookings.ByCustomer(ctx, customerID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		FlightNumber: booking.FlightNumber,
		SeatNumber:   booking.SeatNumber,
		Status:       string(booking.Status),
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			log.Printf("WARNING: publish %s notification for booking %s: %v", eventType, booking.ID, err)
		}
	}
}

// newBookingID follows the booking id scheme "B" plus a random suffix. The
// store reports a collision as ErrDuplicateID and CreateBooking retries once.
func newBookingID() string {
	return "B" + uuid.NewString()[:8]
}

var _ BookingUseCase = (*BookingService)(nil)
