package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	auditoriumHandler *adaptor.AuditoriumHandler,
	auth middleware.Authenticator,
	gate access.Gate,
	log *zap.Logger,
) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(auth, log))
		r.Use(middleware.Gate(gate, log))

		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.GetMovieByID)
	})

	r.Route("/api/auditoriums", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(auth, log))
		r.Use(middleware.Gate(gate, log))

		r.Get("/", auditoriumHandler.GetAuditoriums)
		r.Post("/", auditoriumHandler.CreateAuditorium)
		r.Get("/{id}", auditoriumHandler.GetAuditoriumByID)
	})
}
