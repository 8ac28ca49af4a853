package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/clock"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers on top of the repositories.
func Wiring(
	repo *repository.Repository,
	seats cache.SeatAvailabilityCache,
	clk clock.Clock,
	db adaptor.Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, seats, clk, config, logger)
	handler := adaptor.NewHandler(service, db, logger)

	return &App{
		Router: NewRouter(handler, service.Auth, config, logger),
	}
}

// NewRouter mounts every route with its access gate.
func NewRouter(
	handler *adaptor.Handler,
	auth middleware.Authenticator,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.AllowedOrigins))

	catalog := access.ReadOnlyExceptAdmin{AllowAnonymousReads: config.Access.AllowAnonymousReads}

	wireAuth(r, handler.Auth, auth, logger)
	wireCatalog(r, handler.Movie, handler.Auditorium, auth, catalog, logger)
	wireShowtime(r, handler.Showtime, auth, catalog, logger)
	wireBooking(r, handler.Booking, auth, logger)

	r.Get("/health", handler.Health.Health)

	return r
}
