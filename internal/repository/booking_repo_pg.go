package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the booking store. The three mutations each cover the
// booking row and the seat row in a single transaction, so the ledger and the
// store can never be observed in disagreement.
type BookingRepository interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	UpdateSeat(ctx context.Context, id, newSeat string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, created_at, status, customer_id, flight_number, seat_number`

func (r *PGBookingRepository) Get(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *PGBookingRepository) ByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_id=$1 ORDER BY created_at`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Create inserts the booking and claims its seat as one unit. The conditional
// claim serializes racing creates on the same (flight, seat): the loser sees
// zero affected rows and gets ErrSeatTaken, and its booking row never commits.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := claimSeat(ctx, tx, booking.FlightNumber, booking.SeatNumber); err != nil {
		return err
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, status, customer_id, flight_number, seat_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`, booking.ID, booking.Status, booking.CustomerID, booking.FlightNumber, booking.SeatNumber).
		Scan(&booking.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return err
	}

	return tx.Commit(ctx)
}

// Cancel sets the booking to CANCELLED and releases its seat as one unit.
// Only the CONFIRMED->CANCELLED transition touches the ledger: once a booking
// is CANCELLED it no longer owns its seat, which may have been rebooked since,
// so a repeat cancel succeeds without releasing anything.
func (r *PGBookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	wasConfirmed := b.Status == domain.BookingStatusConfirmed

	if _, err := tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, domain.BookingStatusCancelled, id); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusCancelled

	if wasConfirmed {
		if err := releaseSeat(ctx, tx, b.FlightNumber, b.SeatNumber); err != nil {
			return nil, err
		}
	}

	return b, tx.Commit(ctx)
}

// UpdateSeat moves the booking to a new seat: release the old hold, claim the
// new one, rewrite the booking row, all in one transaction. Status is left as
// is; a CANCELLED booking holds no seat, so moving it only rewrites the row.
// Callers must handle "new seat equals current seat" before calling, since
// the release-then-claim pair is not a no-op for the booking's own seat.
func (r *PGBookingRepository) UpdateSeat(ctx context.Context, id, newSeat string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if b.Status == domain.BookingStatusConfirmed {
		if err := releaseSeat(ctx, tx, b.FlightNumber, b.SeatNumber); err != nil {
			return nil, err
		}
		if err := claimSeat(ctx, tx, b.FlightNumber, newSeat); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET seat_number=$1 WHERE id=$2`, newSeat, id); err != nil {
		return nil, err
	}
	b.SeatNumber = newSeat

	return b, tx.Commit(ctx)
}

func claimSeat(ctx context.Context, tx pgx.Tx, flightNumber, seatNumber string) error {
	cmd, err := tx.Exec(ctx, `UPDATE seats SET held = TRUE WHERE flight_number=$1 AND seat_number=$2 AND NOT held`, flightNumber, seatNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSeatTaken
	}
	return nil
}

func releaseSeat(ctx context.Context, tx pgx.Tx, flightNumber, seatNumber string) error {
	_, err := tx.Exec(ctx, `UPDATE seats SET held = FALSE WHERE flight_number=$1 AND seat_number=$2`, flightNumber, seatNumber)
	return err
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.Status, &b.CustomerID, &b.FlightNumber, &b.SeatNumber); err != nil {
		return nil, err
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
