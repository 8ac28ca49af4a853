package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type ShowtimeResponse struct {
	ID             string                `json:"id"`
	MovieID        string                `json:"movie_id"`
	MovieTitle     string                `json:"movie_title,omitempty"`
	AuditoriumID   string                `json:"auditorium_id"`
	AuditoriumName string                `json:"auditorium_name,omitempty"`
	Status         entity.ShowtimeStatus `json:"status"`
	StartTime      time.Time             `json:"start_time"`
	CreatedAt      time.Time             `json:"created_at"`
}

type SeatResponse struct {
	ID         string `json:"id"`
	ShowtimeID string `json:"showtime_id"`
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// Helper converters
func ShowtimeToResponse(s *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:           s.ID.String(),
		MovieID:      s.MovieID.String(),
		AuditoriumID: s.AuditoriumID.String(),
		Status:       s.Status,
		StartTime:    s.StartTime,
		CreatedAt:    s.CreatedAt,
	}
}

func ShowtimeDetailToResponse(d *entity.ShowtimeDetail) ShowtimeResponse {
	resp := ShowtimeToResponse(&d.Showtime)
	resp.MovieTitle = d.MovieTitle
	resp.AuditoriumName = d.AuditoriumName
	return resp
}

func SeatToResponse(s *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         s.ID.String(),
		ShowtimeID: s.ShowtimeID.String(),
		SeatNumber: s.SeatNumber,
		IsBooked:   s.IsBooked,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatToResponse(s))
	}
	return out
}

type AvailableSeatsResponse struct {
	Showtime ShowtimeResponse `json:"showtime"`
	Seats    []SeatResponse   `json:"seats"`
}
