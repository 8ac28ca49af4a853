package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingHistory records one reservation. SeatID is nil once the seat row is deleted.
type BookingHistory struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	MovieID    uuid.UUID  `db:"movie_id"`
	ShowtimeID uuid.UUID  `db:"showtime_id"`
	SeatID     *uuid.UUID `db:"seat_id"`
	Tickets    int        `db:"tickets"`
	BookedAt   time.Time  `db:"booked_at"`
}

// BookingDetail is a booking joined with its showtime, movie and seat for listing.
type BookingDetail struct {
	BookingHistory
	UserName          string    `db:"user_name"`
	MovieTitle        string    `db:"movie_title"`
	AuditoriumName    string    `db:"auditorium_name"`
	ShowtimeStartTime time.Time `db:"start_time"`
	SeatNumber        *string   `db:"seat_number"`
}
