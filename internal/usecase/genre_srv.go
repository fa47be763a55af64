package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/internal/dto/response"
	"movie-api/pkg/apperror"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type GenreService interface {
	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	GetGenreByID(ctx context.Context, id int64) (*response.GenreResponse, error)
	GetGenreMovies(ctx context.Context, id int64) ([]response.MovieResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	PatchGenre(ctx context.Context, id int64, patch request.Patch) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, id int64, force bool) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) findGenre(ctx context.Context, repo *repository.Repository, id int64) (*entity.Genre, error) {
	genre, err := repo.Genre.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get genre by ID",
			zap.Error(err),
			zap.Int64("genre_id", id),
		)
		return nil, fmt.Errorf("get genre by id: %w", err)
	}
	if genre == nil {
		return nil, apperror.NotFound("Genre not found with id %d", id)
	}
	return genre, nil
}

func (s *genreService) GetGenreByID(ctx context.Context, id int64) (*response.GenreResponse, error) {
	genre, err := s.findGenre(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	genreResp := response.GenreToResponse(genre)
	return &genreResp, nil
}

func (s *genreService) GetGenreMovies(ctx context.Context, id int64) ([]response.MovieResponse, error) {
	if _, err := s.findGenre(ctx, s.repo, id); err != nil {
		return nil, err
	}

	movies, err := s.repo.Movie.FindAll(ctx, repository.MovieFilter{GenreID: &id}, nil)
	if err != nil {
		s.log.Error("Failed to get movies of genre", zap.Error(err), zap.Int64("genre_id", id))
		return nil, fmt.Errorf("get movies of genre: %w", err)
	}

	return movieResponses(ctx, s.repo, movies)
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	now := time.Now()
	genre := &entity.Genre{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
	}

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		return tx.Genre.Create(ctx, genre)
	})
	if err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.Int64("genre_id", genre.ID), zap.String("name", genre.Name))

	genreResp := response.GenreToResponse(genre)
	return &genreResp, nil
}

func (s *genreService) PatchGenre(ctx context.Context, id int64, patch request.Patch) (*response.GenreResponse, error) {
	var patched entity.Genre

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		genre, err := s.findGenre(ctx, tx, id)
		if err != nil {
			return err
		}

		patched = *genre
		pc := &patchContext{ctx: ctx, repo: tx, pathID: id}
		err = applyPatch(pc, genrePatchFields, patch, &patched, func(name string) error {
			s.log.Warn("Unknown genre field ignored", zap.String("field", name), zap.Int64("genre_id", id))
			return nil
		})
		if err != nil {
			return err
		}

		patched.UpdatedAt = time.Now()
		if err := tx.Genre.Update(ctx, &patched); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Genre not found with id %d", id)
			}
			return fmt.Errorf("update genre: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Patch genre failed",
			zap.Error(err),
			zap.Int64("genre_id", id),
			zap.Strings("fields", patch.Names()),
		)
		return nil, err
	}

	s.log.Info("Genre patched", zap.Int64("genre_id", id), zap.Strings("fields", patch.Names()))

	genreResp := response.GenreToResponse(&patched)
	return &genreResp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id int64, force bool) error {
	var detached int

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		genre, err := s.findGenre(ctx, tx, id)
		if err != nil {
			return err
		}

		dependents, err := tx.MovieGenre.FindByGenreID(ctx, id)
		if err != nil {
			return fmt.Errorf("find movies of genre: %w", err)
		}

		count := len(dependents)
		if count > 0 && !force {
			return apperror.InvalidArgument("Cannot delete genre '%s' because it has %d associated movies", genre.Name, count)
		}

		if count > 0 {
			if _, err := tx.MovieGenre.DeleteByGenreID(ctx, id); err != nil {
				return fmt.Errorf("detach genre from movies: %w", err)
			}
			detached = count
		}

		if err := tx.Genre.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Genre not found with id %d", id)
			}
			return fmt.Errorf("delete genre: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Delete genre failed", zap.Error(err), zap.Int64("genre_id", id), zap.Bool("force", force))
		return err
	}

	s.log.Info("Genre deleted",
		zap.Int64("genre_id", id),
		zap.Bool("force", force),
		zap.Int("detached_movies", detached),
	)
	return nil
}
