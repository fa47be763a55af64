package adaptor

import (
	"net/http"

	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/apperror"
	"movie-api/pkg/utils"

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

// GetMovies handles GET /api/movies?genre=&year=&actor=&page=&size=&sort=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := request.ParsePageRequest(query)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	var filter repository.MovieFilter
	if filter.GenreID, err = int64Param(query, "genre"); err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}
	if filter.ReleaseYear, err = intParam(query, "year"); err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}
	if filter.ActorID, err = int64Param(query, "actor"); err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	movies, err := h.service.GetMovies(r.Context(), filter, page)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// SearchMovies handles GET /api/movies/search?title=
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	title := stringParam(query, "title")
	if title == nil {
		handleServiceError(w, h.log, apperror.InvalidArgument("Required parameter 'title' is not present"), "search movies")
		return
	}

	page, err := request.ParsePageRequest(query)
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	movies, err := h.service.SearchMovies(r.Context(), *title, page)
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// GetMovieActors handles GET /api/movies/{id}/actors
func (h *MovieHandler) GetMovieActors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie actors")
		return
	}

	actors, err := h.service.GetMovieActors(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie actors")
		return
	}

	utils.ResponseSuccess(w, "Actors retrieved successfully", actors)
}

// CreateMovie handles POST /api/movies. Entries in actors and genres may be
// {"id": n} objects or bare ids; a repeated id is kept once, at its first
// position, instead of failing the request.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// PatchMovie handles PATCH /api/movies/{id}. Fields are applied in body
// order and all succeed or none are stored. Repeated ids in actors or genres
// are collapsed as in CreateMovie.
func (h *MovieHandler) PatchMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "patch movie")
		return
	}

	var patch request.Patch
	if err := decodeJSON(r, &patch); err != nil {
		handleServiceError(w, h.log, err, "patch movie")
		return
	}

	movie, err := h.service.PatchMovie(r.Context(), id, patch)
	if err != nil {
		handleServiceError(w, h.log, err, "patch movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/movies/{id}. A force parameter is accepted
// and has no effect.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseNoContent(w)
}
