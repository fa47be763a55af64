package usecase

import (
	"context"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/response"
	"movie-api/pkg/apperror"
)

// resolveGenres loads genres for ids in the given order, duplicates dropped.
// Any id without a row fails the whole set.
func resolveGenres(ctx context.Context, repo *repository.Repository, ids []int64) ([]*entity.Genre, error) {
	ids = repository.DedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := repo.Genre.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	if len(found) != len(ids) {
		return nil, apperror.InvalidArgument("One or more genres not found by provided IDs")
	}

	byID := make(map[int64]*entity.Genre, len(found))
	for _, genre := range found {
		byID[genre.ID] = genre
	}
	genres := make([]*entity.Genre, len(ids))
	for i, id := range ids {
		genres[i] = byID[id]
	}
	return genres, nil
}

func resolveActors(ctx context.Context, repo *repository.Repository, ids []int64) ([]*entity.Actor, error) {
	ids = repository.DedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := repo.Actor.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find actors: %w", err)
	}
	if len(found) != len(ids) {
		return nil, apperror.InvalidArgument("One or more actors not found by provided IDs")
	}

	byID := make(map[int64]*entity.Actor, len(found))
	for _, actor := range found {
		byID[actor.ID] = actor
	}
	actors := make([]*entity.Actor, len(ids))
	for i, id := range ids {
		actors[i] = byID[id]
	}
	return actors, nil
}

func genreIDs(genres []*entity.Genre) []int64 {
	ids := make([]int64, len(genres))
	for i, genre := range genres {
		ids[i] = genre.ID
	}
	return ids
}

func actorIDs(actors []*entity.Actor) []int64 {
	ids := make([]int64, len(actors))
	for i, actor := range actors {
		ids[i] = actor.ID
	}
	return ids
}

// movieRelations holds the actors and genres of a batch of movies, each
// list in the movie's stored order.
type movieRelations struct {
	actors map[int64][]*entity.Actor
	genres map[int64][]*entity.Genre
}

// loadMovieRelations fetches the join rows of movies with one query per
// table, then the referenced actors and genres with one query each.
func loadMovieRelations(ctx context.Context, repo *repository.Repository, movies []*entity.Movie) (*movieRelations, error) {
	rel := &movieRelations{
		actors: make(map[int64][]*entity.Actor),
		genres: make(map[int64][]*entity.Genre),
	}
	if len(movies) == 0 {
		return rel, nil
	}

	movieIDs := make([]int64, len(movies))
	for i, movie := range movies {
		movieIDs[i] = movie.ID
	}

	movieActors, err := repo.MovieActor.FindByMovieIDs(ctx, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("find movie actors: %w", err)
	}
	refActorIDs := make([]int64, len(movieActors))
	for i, ma := range movieActors {
		refActorIDs[i] = ma.ActorID
	}
	actors, err := repo.Actor.FindByIDs(ctx, repository.DedupeIDs(refActorIDs))
	if err != nil {
		return nil, fmt.Errorf("find actors: %w", err)
	}
	actorByID := make(map[int64]*entity.Actor, len(actors))
	for _, actor := range actors {
		actorByID[actor.ID] = actor
	}
	for _, ma := range movieActors {
		if actor, ok := actorByID[ma.ActorID]; ok {
			rel.actors[ma.MovieID] = append(rel.actors[ma.MovieID], actor)
		}
	}

	movieGenres, err := repo.MovieGenre.FindByMovieIDs(ctx, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("find movie genres: %w", err)
	}
	refGenreIDs := make([]int64, len(movieGenres))
	for i, mg := range movieGenres {
		refGenreIDs[i] = mg.GenreID
	}
	genres, err := repo.Genre.FindByIDs(ctx, repository.DedupeIDs(refGenreIDs))
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	genreByID := make(map[int64]*entity.Genre, len(genres))
	for _, genre := range genres {
		genreByID[genre.ID] = genre
	}
	for _, mg := range movieGenres {
		if genre, ok := genreByID[mg.GenreID]; ok {
			rel.genres[mg.MovieID] = append(rel.genres[mg.MovieID], genre)
		}
	}

	return rel, nil
}

func movieResponses(ctx context.Context, repo *repository.Repository, movies []*entity.Movie) ([]response.MovieResponse, error) {
	rel, err := loadMovieRelations(ctx, repo, movies)
	if err != nil {
		return nil, err
	}

	out := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = response.MovieToResponse(movie, rel.actors[movie.ID], rel.genres[movie.ID])
	}
	return out, nil
}
