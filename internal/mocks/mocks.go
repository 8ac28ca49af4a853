// Package mocks holds testify mocks of the service interfaces for handler
// and middleware tests.
package mocks

import "movie-booking/internal/usecase"

var (
	_ usecase.AuthService       = (*MockAuthService)(nil)
	_ usecase.MovieService      = (*MockMovieService)(nil)
	_ usecase.AuditoriumService = (*MockAuditoriumService)(nil)
	_ usecase.ShowtimeService   = (*MockShowtimeService)(nil)
	_ usecase.BookingService    = (*MockBookingService)(nil)
)
