package entity

import (
	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	Language        *string    `db:"language"`
	Genres          []string   `db:"genres"`
	DurationMinutes int        `db:"duration_minutes"`
	Rate            float64    `db:"rate"`
	Price           float64    `db:"price"`
	ImageURL        *string    `db:"image_url"`
	CreatedBy       *uuid.UUID `db:"created_by"`
}
