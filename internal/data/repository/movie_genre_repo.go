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

type MovieGenreRepository interface {
	// Bridge table operations
	CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error
	// ReplaceForMovie swaps the movie's whole genre set for genreIDs, in order.
	ReplaceForMovie(ctx context.Context, movieID int64, genreIDs []int64) error
	DeleteByMovieID(ctx context.Context, movieID int64) error
	DeleteByGenreID(ctx context.Context, genreID int64) (int64, error)

	FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieGenre, error)
	FindByGenreID(ctx context.Context, genreID int64) ([]*entity.MovieGenre, error)
}

type movieGenreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieGenreRepository(db database.Querier, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error {
	if len(movieGenres) == 0 {
		return nil
	}

	// Build batch insert
	var query strings.Builder
	query.WriteString(`INSERT INTO movie_genres (movie_id, genre_id, position, created_at) VALUES `)
	args := make([]any, 0, len(movieGenres)*4)

	for i, mg := range movieGenres {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, mg.MovieID, mg.GenreID, mg.Position, mg.CreatedAt)
	}

	if _, err := r.db.Exec(ctx, query.String(), args...); err != nil {
		r.log.Error("Failed to create batch movie_genres",
			zap.Error(err),
			zap.Int("count", len(movieGenres)),
		)
		return fmt.Errorf("failed to create batch movie_genres: %w", err)
	}

	return nil
}

func (r *movieGenreRepository) ReplaceForMovie(ctx context.Context, movieID int64, genreIDs []int64) error {
	if err := r.DeleteByMovieID(ctx, movieID); err != nil {
		return err
	}

	now := time.Now()
	genreIDs = DedupeIDs(genreIDs)
	movieGenres := make([]*entity.MovieGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		movieGenres[i] = &entity.MovieGenre{
			JoinBase: entity.JoinBase{MovieID: movieID, Position: i, CreatedAt: now},
			GenreID:  genreID,
		}
	}

	return r.CreateBatch(ctx, movieGenres)
}

func (r *movieGenreRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	query := `DELETE FROM movie_genres WHERE movie_id = $1`

	if _, err := r.db.Exec(ctx, query, movieID); err != nil {
		r.log.Error("Failed to delete movie_genres by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("failed to delete movie_genres: %w", err)
	}

	return nil
}

func (r *movieGenreRepository) DeleteByGenreID(ctx context.Context, genreID int64) (int64, error) {
	query := `DELETE FROM movie_genres WHERE genre_id = $1`

	result, err := r.db.Exec(ctx, query, genreID)
	if err != nil {
		r.log.Error("Failed to delete movie_genres by genre ID",
			zap.Error(err),
			zap.Int64("genre_id", genreID),
		)
		return 0, fmt.Errorf("failed to delete movie_genres: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *movieGenreRepository) FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieGenre, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT movie_id, genre_id, position, created_at
		FROM movie_genres
		WHERE movie_id = ANY($1)
		ORDER BY movie_id, position
	`
	return r.query(ctx, "find movie_genres by movie IDs", query, movieIDs)
}

func (r *movieGenreRepository) FindByGenreID(ctx context.Context, genreID int64) ([]*entity.MovieGenre, error) {
	query := `
		SELECT movie_id, genre_id, position, created_at
		FROM movie_genres
		WHERE genre_id = $1
		ORDER BY movie_id
	`
	return r.query(ctx, "find movie_genres by genre ID", query, genreID)
}

func (r *movieGenreRepository) query(ctx context.Context, operation, query string, args ...any) ([]*entity.MovieGenre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("failed to %s: %w", operation, err)
	}
	defer rows.Close()

	var movieGenres []*entity.MovieGenre
	for rows.Next() {
		var mg entity.MovieGenre
		err := rows.Scan(
			&mg.MovieID,
			&mg.GenreID,
			&mg.Position,
			&mg.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie_genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie_genre: %w", err)
		}
		movieGenres = append(movieGenres, &mg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", operation, err)
	}

	return movieGenres, nil
}
