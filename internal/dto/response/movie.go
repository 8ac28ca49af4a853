package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Language        *string   `json:"language,omitempty"`
	Genres          []string  `json:"genres"`
	DurationMinutes int       `json:"duration_minutes"`
	Rate            float64   `json:"rate"`
	Price           float64   `json:"price"`
	ImageURL        *string   `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type AuditoriumResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	MovieID    *string   `json:"movie_id,omitempty"`
	TotalShows int       `json:"total_shows"`
	Place      string    `json:"place"`
	CreatedAt  time.Time `json:"created_at"`
}

// Helper converters
func MovieToResponse(m *entity.Movie) MovieResponse {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Description:     m.Description,
		Language:        m.Language,
		Genres:          genres,
		DurationMinutes: m.DurationMinutes,
		Rate:            m.Rate,
		Price:           m.Price,
		ImageURL:        m.ImageURL,
		CreatedAt:       m.CreatedAt,
	}
}

func AuditoriumToResponse(a *entity.Auditorium) AuditoriumResponse {
	resp := AuditoriumResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		TotalSeats: a.TotalSeats,
		TotalShows: a.TotalShows,
		Place:      a.Place,
		CreatedAt:  a.CreatedAt,
	}
	if a.MovieID != nil {
		id := a.MovieID.String()
		resp.MovieID = &id
	}
	return resp
}
