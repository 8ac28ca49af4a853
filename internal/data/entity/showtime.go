package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ShowtimeStatus string

const (
	ShowtimeScheduled ShowtimeStatus = "scheduled"
	ShowtimeCancelled ShowtimeStatus = "cancelled"
	ShowtimeCompleted ShowtimeStatus = "completed"
)

func ParseShowtimeStatus(s string) (ShowtimeStatus, error) {
	switch st := ShowtimeStatus(s); st {
	case ShowtimeScheduled, ShowtimeCancelled, ShowtimeCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("unknown showtime status %q", s)
	}
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Only scheduled may move, and only to cancelled or completed.
func (s ShowtimeStatus) CanTransitionTo(next ShowtimeStatus) bool {
	return s == ShowtimeScheduled && (next == ShowtimeCancelled || next == ShowtimeCompleted)
}

type Showtime struct {
	Base
	MovieID      uuid.UUID      `db:"movie_id"`
	AuditoriumID uuid.UUID      `db:"auditorium_id"`
	Status       ShowtimeStatus `db:"status"`
	StartTime    time.Time      `db:"start_time"`
}

// HasStarted is the single temporal guard: a showtime whose start is at or
// before now is past or ongoing.
func (s *Showtime) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}

// ShowtimeDetail joins a showtime with the catalog names callers display.
type ShowtimeDetail struct {
	Showtime
	MovieTitle     string `db:"movie_title"`
	AuditoriumName string `db:"auditorium_name"`
}
