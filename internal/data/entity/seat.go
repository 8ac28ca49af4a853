package entity

import "github.com/google/uuid"

type Seat struct {
	BaseSimple
	ShowtimeID uuid.UUID `db:"showtime_id"`
	SeatNumber string    `db:"seat_number"` // A1, A2, B1, etc.

	// IsBooked is computed from booking_histories on read, never stored.
	IsBooked bool `db:"is_booked"`
}
