package request

import "time"

type CreateShowtimeRequest struct {
	MovieID      string    `json:"movie_id" validate:"required,uuid"`
	AuditoriumID string    `json:"auditorium_id" validate:"required,uuid"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
}

type GenerateSeatsRequest struct {
	SeatNumbers []string `json:"seat_numbers" validate:"required,min=1,dive,required,max=10"`
}

// FindSeatsRequest locates a showtime by names and a UTC time of day.
type FindSeatsRequest struct {
	MovieName      string `json:"movie_name" validate:"required"`
	AuditoriumName string `json:"auditorium_name" validate:"required"`
	ShowTime       string `json:"show_time" validate:"required,datetime=15:04:05"`
}

type ListShowtimesRequest struct {
	PaginatedRequest
	MovieID      string `json:"movie_id" validate:"omitempty,uuid"`
	AuditoriumID string `json:"auditorium_id" validate:"omitempty,uuid"`
	Status       string `json:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
}
