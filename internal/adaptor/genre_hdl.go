package adaptor

import (
	"net/http"

	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GetGenres handles GET /api/genres
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "success", genres)
}

// GetGenreByID handles GET /api/genres/{id}
func (h *GenreHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre by ID")
		return
	}

	genre, err := h.service.GetGenreByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre by ID")
		return
	}

	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

// GetGenreMovies handles GET /api/genres/{id}/movies
func (h *GenreHandler) GetGenreMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre movies")
		return
	}

	movies, err := h.service.GetGenreMovies(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// CreateGenre handles POST /api/genres
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "Genre created successfully", genre)
}

// PatchGenre handles PATCH /api/genres/{id}
func (h *GenreHandler) PatchGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "patch genre")
		return
	}

	var patch request.Patch
	if err := decodeJSON(r, &patch); err != nil {
		handleServiceError(w, h.log, err, "patch genre")
		return
	}

	genre, err := h.service.PatchGenre(r.Context(), id, patch)
	if err != nil {
		handleServiceError(w, h.log, err, "patch genre")
		return
	}

	utils.ResponseSuccess(w, "Genre updated successfully", genre)
}

// DeleteGenre handles DELETE /api/genres/{id}?force=
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}

	force := request.ParseForceFlag(r.URL.Query())
	if err := h.service.DeleteGenre(r.Context(), id, force); err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}

	utils.ResponseNoContent(w)
}
