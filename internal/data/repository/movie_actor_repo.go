package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-api/internal/data/entity"
	"movie-api/pkg/database"

	"go.uber.org/zap"
)

type MovieActorRepository interface {
	CreateBatch(ctx context.Context, movieActors []*entity.MovieActor) error
	// ReplaceForMovie swaps the movie's whole cast for actorIDs, in order.
	ReplaceForMovie(ctx context.Context, movieID int64, actorIDs []int64) error
	DeleteByMovieID(ctx context.Context, movieID int64) error
	DeleteByActorID(ctx context.Context, actorID int64) (int64, error)

	FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieActor, error)
	FindByActorID(ctx context.Context, actorID int64) ([]*entity.MovieActor, error)
}

type movieActorRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieActorRepository(db database.Querier, log *zap.Logger) MovieActorRepository {
	return &movieActorRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_actor")),
	}
}

func (r *movieActorRepository) CreateBatch(ctx context.Context, movieActors []*entity.MovieActor) error {
	if len(movieActors) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO movie_actors (movie_id, actor_id, position, created_at) VALUES `)
	args := make([]any, 0, len(movieActors)*4)

	for i, ma := range movieActors {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, ma.MovieID, ma.ActorID, ma.Position, ma.CreatedAt)
	}

	if _, err := r.db.Exec(ctx, query.String(), args...); err != nil {
		r.log.Error("Failed to create batch movie_actors",
			zap.Error(err),
			zap.Int("count", len(movieActors)),
		)
		return fmt.Errorf("failed to create batch movie_actors: %w", err)
	}

	return nil
}

func (r *movieActorRepository) ReplaceForMovie(ctx context.Context, movieID int64, actorIDs []int64) error {
	if err := r.DeleteByMovieID(ctx, movieID); err != nil {
		return err
	}

	now := time.Now()
	actorIDs = DedupeIDs(actorIDs)
	movieActors := make([]*entity.MovieActor, len(actorIDs))
	for i, actorID := range actorIDs {
		movieActors[i] = &entity.MovieActor{
			JoinBase: entity.JoinBase{MovieID: movieID, Position: i, CreatedAt: now},
			ActorID:  actorID,
		}
	}

	return r.CreateBatch(ctx, movieActors)
}

func (r *movieActorRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	query := `DELETE FROM movie_actors WHERE movie_id = $1`

	if _, err := r.db.Exec(ctx, query, movieID); err != nil {
		r.log.Error("Failed to delete movie_actors by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("failed to delete movie_actors: %w", err)
	}

	return nil
}

func (r *movieActorRepository) DeleteByActorID(ctx context.Context, actorID int64) (int64, error) {
	query := `DELETE FROM movie_actors WHERE actor_id = $1`

	result, err := r.db.Exec(ctx, query, actorID)
	if err != nil {
		r.log.Error("Failed to delete movie_actors by actor ID",
			zap.Error(err),
			zap.Int64("actor_id", actorID),
		)
		return 0, fmt.Errorf("failed to delete movie_actors: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *movieActorRepository) FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieActor, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT movie_id, actor_id, position, created_at
		FROM movie_actors
		WHERE movie_id = ANY($1)
		ORDER BY movie_id, position
	`
	return r.query(ctx, "find movie_actors by movie IDs", query, movieIDs)
}

func (r *movieActorRepository) FindByActorID(ctx context.Context, actorID int64) ([]*entity.MovieActor, error) {
	query := `
		SELECT movie_id, actor_id, position, created_at
		FROM movie_actors
		WHERE actor_id = $1
		ORDER BY movie_id
	`
	return r.query(ctx, "find movie_actors by actor ID", query, actorID)
}

func (r *movieActorRepository) query(ctx context.Context, operation, query string, args ...any) ([]*entity.MovieActor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("failed to %s: %w", operation, err)
	}
	defer rows.Close()

	var movieActors []*entity.MovieActor
	for rows.Next() {
		var ma entity.MovieActor
		err := rows.Scan(
			&ma.MovieID,
			&ma.ActorID,
			&ma.Position,
			&ma.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie_actor row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie_actor: %w", err)
		}
		movieActors = append(movieActors, &ma)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", operation, err)
	}

	return movieActors, nil
}
