package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type ReservationResponse struct {
	BookingID  string    `json:"booking_id"`
	SeatID     string    `json:"seat_id"`
	SeatNumber string    `json:"seat_number"`
	ShowtimeID string    `json:"showtime_id"`
	StartTime  time.Time `json:"start_time"`
	MovieTitle string    `json:"movie_title"`
	Tickets    int       `json:"tickets"`
	BookedAt   time.Time `json:"booked_at"`
}

type BookingResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	MovieID        string    `json:"movie_id"`
	MovieTitle     string    `json:"movie_title"`
	AuditoriumName string    `json:"auditorium_name"`
	ShowtimeID     string    `json:"showtime_id"`
	StartTime      time.Time `json:"start_time"`
	SeatID         *string   `json:"seat_id"`
	SeatNumber     *string   `json:"seat_number"`
	Tickets        int       `json:"tickets"`
	BookedAt       time.Time `json:"booked_at"`
}

type SeatDetailsResponse struct {
	Seat       SeatResponse `json:"seat"`
	ShowtimeID string       `json:"showtime_id"`
	StartTime  time.Time    `json:"start_time"`
	MovieTitle string       `json:"movie_title"`
}

// Helper converters
func BookingToResponse(b *entity.BookingDetail) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID.String(),
		UserID:         b.UserID.String(),
		UserName:       b.UserName,
		MovieID:        b.MovieID.String(),
		MovieTitle:     b.MovieTitle,
		AuditoriumName: b.AuditoriumName,
		ShowtimeID:     b.ShowtimeID.String(),
		StartTime:      b.ShowtimeStartTime,
		SeatNumber:     b.SeatNumber,
		Tickets:        b.Tickets,
		BookedAt:       b.BookedAt,
	}
	if b.SeatID != nil {
		id := b.SeatID.String()
		resp.SeatID = &id
	}
	return resp
}
