package entity

import "github.com/google/uuid"

type Auditorium struct {
	Base
	Name       string     `db:"name"`
	TotalSeats int        `db:"total_seats"`
	MovieID    *uuid.UUID `db:"movie_id"`
	TotalShows int        `db:"total_shows"`
	Place      string     `db:"place"`
	AdminID    *uuid.UUID `db:"admin_id"`
}
