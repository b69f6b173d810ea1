package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeatRepository is the seat ledger: per-flight hold state, plus the flight's
// seat map. Unknown seats read as not held; validating that a seat exists at
// all is the caller's job (Exists).
type SeatRepository interface {
	IsHeld(ctx context.Context, flightNumber, seatNumber string) (bool, error)
	SetHeld(ctx context.Context, flightNumber, seatNumber string, held bool) error
	AvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error)
	Exists(ctx context.Context, flightNumber, seatNumber string) (bool, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

func (r *PGSeatRepository) IsHeld(ctx context.Context, flightNumber, seatNumber string) (bool, error) {
	var held bool
	err := r.db.QueryRow(ctx, `SELECT held FROM seats WHERE flight_number=$1 AND seat_number=$2`, flightNumber, seatNumber).Scan(&held)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return held, nil
}

// SetHeld is idempotent: writing the state the seat is already in is not an
// error and affects nothing.
func (r *PGSeatRepository) SetHeld(ctx context.Context, flightNumber, seatNumber string, held bool) error {
	_, err := r.db.Exec(ctx, `UPDATE seats SET held=$1 WHERE flight_number=$2 AND seat_number=$3`, held, flightNumber, seatNumber)
	return err
}

func (r *PGSeatRepository) AvailableSeats(ctx context.Context, flightNumber string) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_number FROM seats WHERE flight_number=$1 AND NOT held ORDER BY seat_number`, flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var seatNumber string
		if err := rows.Scan(&seatNumber); err != nil {
			return nil, err
		}
		seats = append(seats, domain.Seat{SeatNumber: seatNumber, FlightNumber: flightNumber, Held: false})
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) Exists(ctx context.Context, flightNumber, seatNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seats WHERE flight_number=$1 AND seat_number=$2)`, flightNumber, seatNumber).Scan(&exists)
	return exists, err
}

var _ SeatRepository = (*PGSeatRepository)(nil)
