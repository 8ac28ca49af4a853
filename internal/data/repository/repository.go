package repository

import (
	"context"

	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

// Transactor opens a unit of work. Repository calls made with the context
// passed to fn run inside the same transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repository struct {
	Tx         Transactor
	User       UserRepository
	Session    SessionRepository
	Movie      MovieRepository
	Auditorium AuditoriumRepository
	Showtime   ShowtimeRepository
	Seat       SeatRepository
	Booking    BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:         &pgTransactor{db: db},
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Auditorium: NewAuditoriumRepository(db, log),
		Showtime:   NewShowtimeRepository(db, log),
		Seat:       NewSeatRepository(db, log),
		Booking:    NewBookingRepository(db, log),
	}
}

type pgTransactor struct {
	db database.PgxIface
}

func (t *pgTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTx(ctx, t.db, fn)
}
