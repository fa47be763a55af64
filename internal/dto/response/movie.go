package response

import (
	"movie-api/internal/data/entity"
)

type MovieResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	ReleaseYear int             `json:"releaseYear"`
	Duration    int             `json:"duration"`
	Actors      []ActorResponse `json:"actors"`
	Genres      []GenreResponse `json:"genres"`
}

// MovieToResponse renders movie with its resolved actors and genres, which
// are expected in the movie's stored order.
func MovieToResponse(movie *entity.Movie, actors []*entity.Actor, genres []*entity.Genre) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseYear: movie.ReleaseYear,
		Duration:    movie.Duration,
		Actors:      ActorsToResponse(actors),
		Genres:      GenresToResponse(genres),
	}
}
