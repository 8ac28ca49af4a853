package request

type CreateMovieRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description"`
	Language        *string  `json:"language,omitempty" validate:"omitempty,max=100"`
	Genres          []string `json:"genres" validate:"omitempty,dive,required,max=50"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	Rate            float64  `json:"rate" validate:"gte=0,lte=10"`
	Price           float64  `json:"price" validate:"gte=0"`
	ImageURL        *string  `json:"image_url,omitempty" validate:"omitempty,url"`
}

type CreateAuditoriumRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	TotalSeats int     `json:"total_seats" validate:"gte=0"`
	MovieID    *string `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	TotalShows int     `json:"total_shows" validate:"gte=0"`
	Place      string  `json:"place" validate:"required,max=255"`
}
