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

type BookingRepository interface {
	// Create inserts the booking. A second booking for the same seat yields
	// a conflict error.
	Create(ctx context.Context, booking *entity.BookingHistory) error
	ExistsBySeat(ctx context.Context, seatID uuid.UUID) (bool, error)
	ExistsByUserAndShowtime(ctx context.Context, userID, showtimeID uuid.UUID) (bool, error)
	// FindOwnedForUpdate locks the booking when it belongs to userID.
	FindOwnedForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.BookingHistory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailSelect = `
	SELECT bh.id, bh.user_id, bh.movie_id, bh.showtime_id, bh.seat_id, bh.tickets, bh.booked_at,
	       u.name, m.title, a.name, st.start_time, s.seat_number
	FROM booking_histories bh
	JOIN users u ON u.id = bh.user_id
	JOIN movies m ON m.id = bh.movie_id
	JOIN showtimes st ON st.id = bh.showtime_id
	JOIN auditoriums a ON a.id = st.auditorium_id
	LEFT JOIN seats s ON s.id = bh.seat_id
`

func (r *bookingRepository) Create(ctx context.Context, b *entity.BookingHistory) error {
	query := `
		INSERT INTO booking_histories (id, user_id, movie_id, showtime_id, seat_id, tickets, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		b.ID,
		b.UserID,
		b.MovieID,
		b.ShowtimeID,
		b.SeatID,
		b.Tickets,
		b.BookedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("seat is already booked")
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", b.UserID.String()),
			zap.String("showtime_id", b.ShowtimeID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) ExistsBySeat(ctx context.Context, seatID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM booking_histories WHERE seat_id = $1)`

	var exists bool
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, seatID).Scan(&exists); err != nil {
		r.log.Error("Failed to check seat booking",
			zap.Error(err),
			zap.String("seat_id", seatID.String()),
		)
		return false, fmt.Errorf("check booking for seat %s: %w", seatID.String(), err)
	}
	return exists, nil
}

func (r *bookingRepository) ExistsByUserAndShowtime(ctx context.Context, userID, showtimeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM booking_histories WHERE user_id = $1 AND showtime_id = $2)`

	var exists bool
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID, showtimeID).Scan(&exists); err != nil {
		r.log.Error("Failed to check user booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("showtime_id", showtimeID.String()),
		)
		return false, fmt.Errorf("check booking for user %s: %w", userID.String(), err)
	}
	return exists, nil
}

func (r *bookingRepository) FindOwnedForUpdate(ctx context.Context, id, userID uuid.UUID) (*entity.BookingHistory, error) {
	query := `
		SELECT id, user_id, movie_id, showtime_id, seat_id, tickets, booked_at
		FROM booking_histories
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	var b entity.BookingHistory
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id, userID).Scan(
		&b.ID,
		&b.UserID,
		&b.MovieID,
		&b.ShowtimeID,
		&b.SeatID,
		&b.Tickets,
		&b.BookedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking %s: %w", id.String(), err)
	}

	return &b, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM booking_histories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}
	return nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` WHERE bh.user_id = $1 ORDER BY bh.booked_at DESC, bh.id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		QueryRow(ctx, `SELECT COUNT(*) FROM booking_histories WHERE user_id = $1`, userID).
		Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` ORDER BY bh.booked_at DESC, bh.id LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM booking_histories`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.BookingDetail, 0)
	for rows.Next() {
		var d entity.BookingDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.MovieID,
			&d.ShowtimeID,
			&d.SeatID,
			&d.Tickets,
			&d.BookedAt,
			&d.UserName,
			&d.MovieTitle,
			&d.AuditoriumName,
			&d.ShowtimeStartTime,
			&d.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		d.ShowtimeStartTime = d.ShowtimeStartTime.UTC()
		bookings = append(bookings, &d)
	}

	return bookings, rows.Err()
}
