package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	// CreateBatch inserts every seat or none. A seat number already present
	// for the showtime yields apperr.ErrDuplicateSeat.
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	// FindForUpdate locks the seat row of the given showtime for the rest of
	// the surrounding transaction.
	FindForUpdate(ctx context.Context, id, showtimeID uuid.UUID) (*entity.Seat, error)
	ListByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error)
	ListAvailable(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatSelect = `
	SELECT s.id, s.showtime_id, s.seat_number, s.created_at,
	       EXISTS (SELECT 1 FROM booking_histories bh WHERE bh.seat_id = s.id) AS is_booked
	FROM seats s
`

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	return database.WithTx(ctx, r.db, func(ctx context.Context) error {
		batch := &pgx.Batch{}
		query := `INSERT INTO seats (id, showtime_id, seat_number, created_at) VALUES ($1, $2, $3, $4)`
		for _, seat := range seats {
			batch.Queue(query, seat.ID, seat.ShowtimeID, seat.SeatNumber, seat.CreatedAt)
		}

		results := database.TxFromContext(ctx).SendBatch(ctx, batch)
		for _, seat := range seats {
			if _, err := results.Exec(); err != nil {
				results.Close()
				if database.IsUniqueViolation(err) {
					return apperr.DuplicateSeat(seat.SeatNumber)
				}
				r.log.Error("Failed to create seat",
					zap.Error(err),
					zap.String("showtime_id", seat.ShowtimeID.String()),
					zap.String("seat_number", seat.SeatNumber),
				)
				return fmt.Errorf("create seat %s: %w", seat.SeatNumber, err)
			}
		}

		return results.Close()
	})
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := seatSelect + ` WHERE s.id = $1`

	seat, err := scanSeat(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return seat, nil
}

func (r *seatRepository) FindForUpdate(ctx context.Context, id, showtimeID uuid.UUID) (*entity.Seat, error) {
	query := seatSelect + ` WHERE s.id = $1 AND s.showtime_id = $2 FOR UPDATE OF s`

	seat, err := scanSeat(database.Conn(ctx, r.db).QueryRow(ctx, query, id, showtimeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock seat",
			zap.Error(err),
			zap.String("seat_id", id.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("lock seat %s: %w", id.String(), err)
	}

	return seat, nil
}

func (r *seatRepository) ListByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	return r.list(ctx, seatSelect+` WHERE s.showtime_id = $1 ORDER BY s.created_at, s.id`, showtimeID)
}

func (r *seatRepository) ListAvailable(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	query := seatSelect + `
		WHERE s.showtime_id = $1
		  AND NOT EXISTS (SELECT 1 FROM booking_histories bh WHERE bh.seat_id = s.id)
		ORDER BY s.created_at, s.id
	`
	return r.list(ctx, query, showtimeID)
}

func (r *seatRepository) list(ctx context.Context, query string, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to list seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("list seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	seats := make([]*entity.Seat, 0)
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func scanSeat(row pgx.Row) (*entity.Seat, error) {
	var seat entity.Seat
	err := row.Scan(
		&seat.ID,
		&seat.ShowtimeID,
		&seat.SeatNumber,
		&seat.CreatedAt,
		&seat.IsBooked,
	)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}
