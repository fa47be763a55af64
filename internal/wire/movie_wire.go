package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		// ==================== QUERIES ====================
		r.Get("/", movieHandler.GetMovies)                 // GET /api/movies?genre=&year=&actor=
		r.Get("/search", movieHandler.SearchMovies)        // GET /api/movies/search?title=
		r.Get("/{id}", movieHandler.GetMovieByID)          // GET /api/movies/{id}
		r.Get("/{id}/actors", movieHandler.GetMovieActors) // GET /api/movies/{id}/actors

		// ==================== COMMANDS ====================
		r.Post("/", movieHandler.CreateMovie)
		r.Patch("/{id}", movieHandler.PatchMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
