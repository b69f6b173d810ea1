package repository

import (
	"context"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConsistencyAuditor finds seats whose held flag disagrees with
// "exists a CONFIRMED booking referencing this seat". The transactional
// mutations make such rows impossible; the worker sweeps for them anyway so a
// storage-layer bug shows up in logs instead of as a silent double-booking.
type ConsistencyAuditor interface {
	FindSeatDisagreements(ctx context.Context) ([]domain.Seat, error)
}

type PGConsistencyAuditor struct {
	db *pgxpool.Pool
}

func NewConsistencyAuditor(db *pgxpool.Pool) ConsistencyAuditor {
	return &PGConsistencyAuditor{db: db}
}

func (r *PGConsistencyAuditor) FindSeatDisagreements(ctx context.Context) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.flight_number, s.seat_number, s.held
		FROM seats s
		WHERE s.held <> EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.flight_number = s.flight_number
			  AND b.seat_number = s.seat_number
			  AND b.status = 'CONFIRMED'
		)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []domain.Seat
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.FlightNumber, &s.SeatNumber, &s.Held); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

var _ ConsistencyAuditor = (*PGConsistencyAuditor)(nil)
