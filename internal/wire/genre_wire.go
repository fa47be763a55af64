package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Route("/api/genres", func(r chi.Router) {
		r.Get("/", genreHandler.GetGenres)
		r.Get("/{id}", genreHandler.GetGenreByID)
		r.Get("/{id}/movies", genreHandler.GetGenreMovies)

		r.Post("/", genreHandler.CreateGenre)
		r.Patch("/{id}", genreHandler.PatchGenre)
		r.Delete("/{id}", genreHandler.DeleteGenre) // DELETE /api/genres/{id}?force=true
	})
}
