package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-api/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Update and Delete when no row matched.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	Movie      MovieRepository
	Actor      ActorRepository
	Genre      GenreRepository
	MovieActor MovieActorRepository
	MovieGenre MovieGenreRepository

	runTx func(ctx context.Context, fn func(repo *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newQuerierRepository(db, log)
	txLog := log.With(zap.String("repository", "tx"))

	repo.runTx = func(ctx context.Context, fn func(repo *Repository) error) error {
		tx, err := db.Begin(ctx)
		if err != nil {
			txLog.Error("Failed to begin transaction", zap.Error(err))
			return fmt.Errorf("begin transaction: %w", err)
		}

		committed := false
		defer func() {
			if committed {
				return
			}
			if err := tx.Rollback(ctx); err != nil {
				txLog.Error("Failed to roll back transaction", zap.Error(err))
			}
		}()

		if err := fn(newQuerierRepository(tx, log)); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			txLog.Error("Failed to commit transaction", zap.Error(err))
			return fmt.Errorf("commit transaction: %w", err)
		}
		committed = true
		return nil
	}

	return repo
}

// newQuerierRepository binds every repository to q. Its WithinTx runs fn
// directly, which is what the repository handed to a transaction callback needs.
func newQuerierRepository(q database.Querier, log *zap.Logger) *Repository {
	repo := &Repository{
		Movie:      NewMovieRepository(q, log),
		Actor:      NewActorRepository(q, log),
		Genre:      NewGenreRepository(q, log),
		MovieActor: NewMovieActorRepository(q, log),
		MovieGenre: NewMovieGenreRepository(q, log),
	}
	repo.runTx = runDirect(repo)
	return repo
}

func runDirect(repo *Repository) func(ctx context.Context, fn func(repo *Repository) error) error {
	return func(ctx context.Context, fn func(repo *Repository) error) error {
		return fn(repo)
	}
}

// WithinTx runs fn as one unit of work: every write made through the
// repository passed to fn is committed together or not at all.
func (r *Repository) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return r.runTx(ctx, fn)
}
