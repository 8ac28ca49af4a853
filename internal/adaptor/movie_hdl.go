package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context(), pageRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/movies (admin only)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

type AuditoriumHandler struct {
	service usecase.AuditoriumService
	log     *zap.Logger
}

func NewAuditoriumHandler(service usecase.AuditoriumService, log *zap.Logger) *AuditoriumHandler {
	return &AuditoriumHandler{
		service: service,
		log:     log.With(zap.String("handler", "auditorium")),
	}
}

// GetAuditoriums handles GET /api/auditoriums
func (h *AuditoriumHandler) GetAuditoriums(w http.ResponseWriter, r *http.Request) {
	auditoriums, err := h.service.GetAuditoriums(r.Context(), pageRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get auditoriums")
		return
	}

	utils.ResponseSuccess(w, "success", auditoriums)
}

// GetAuditoriumByID handles GET /api/auditoriums/{id}
func (h *AuditoriumHandler) GetAuditoriumByID(w http.ResponseWriter, r *http.Request) {
	auditorium, err := h.service.GetAuditoriumByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get auditorium by ID")
		return
	}

	utils.ResponseSuccess(w, "Auditorium retrieved successfully", auditorium)
}

// CreateAuditorium handles POST /api/auditoriums (admin only)
func (h *AuditoriumHandler) CreateAuditorium(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAuditoriumRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	auditorium, err := h.service.CreateAuditorium(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create auditorium")
		return
	}

	utils.ResponseCreated(w, "Auditorium created successfully", auditorium)
}

// pageRequest reads page and per_page from the query string.
func pageRequest(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
