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

type MovieService interface {
	// GetMovies applies at most one of the filter's genre, year and actor
	// conditions, in that order of precedence.
	GetMovies(ctx context.Context, filter repository.MovieFilter, page *request.PageRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	SearchMovies(ctx context.Context, title string, page *request.PageRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	GetMovieActors(ctx context.Context, id int64) ([]response.ActorResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	PatchMovie(ctx context.Context, id int64, patch request.Patch) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// firstMatch keeps only the highest-precedence condition of filter.
func firstMatch(filter repository.MovieFilter) repository.MovieFilter {
	switch {
	case filter.GenreID != nil:
		return repository.MovieFilter{GenreID: filter.GenreID}
	case filter.ReleaseYear != nil:
		return repository.MovieFilter{ReleaseYear: filter.ReleaseYear}
	case filter.ActorID != nil:
		return repository.MovieFilter{ActorID: filter.ActorID}
	default:
		return repository.MovieFilter{}
	}
}

func (s *movieService) GetMovies(ctx context.Context, filter repository.MovieFilter, page *request.PageRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	return s.listMovies(ctx, firstMatch(filter), page)
}

func (s *movieService) SearchMovies(ctx context.Context, title string, page *request.PageRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	return s.listMovies(ctx, repository.MovieFilter{Title: &title}, page)
}

func (s *movieService) listMovies(ctx context.Context, filter repository.MovieFilter, page *request.PageRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter, page.Query())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", page.Page),
			zap.Int("size", page.Size),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	// Get total count for pagination metadata
	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	data, err := movieResponses(ctx, s.repo, movies)
	if err != nil {
		s.log.Error("Failed to load movie relations", zap.Error(err))
		return nil, err
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", page.Page),
		zap.Int("size", page.Size),
	)

	return response.NewPaginatedResponse(data, page.Page, page.Size, total), nil
}

func (s *movieService) findMovie(ctx context.Context, repo *repository.Repository, id int64) (*entity.Movie, error) {
	movie, err := repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("Movie not found with id %d", id)
	}
	return movie, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	data, err := movieResponses(ctx, s.repo, []*entity.Movie{movie})
	if err != nil {
		return nil, err
	}
	return &data[0], nil
}

func (s *movieService) GetMovieActors(ctx context.Context, id int64) ([]response.ActorResponse, error) {
	movie, err := s.findMovie(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	rel, err := loadMovieRelations(ctx, s.repo, []*entity.Movie{movie})
	if err != nil {
		return nil, err
	}
	return response.ActorsToResponse(rel.actors[movie.ID]), nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	// Validate request data
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	requestedGenres, err := referenceIDs(req.Genres, "genre", "genres")
	if err != nil {
		return nil, err
	}
	requestedActors, err := referenceIDs(req.Actors, "actor", "actors")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	releaseYear := int(*req.ReleaseYear)
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             req.Title,
		ReleaseYear:       releaseYear,
		Duration:          int(*req.Duration),
		ReleaseDateLegacy: entity.LegacyReleaseDate(releaseYear),
	}

	var genres []*entity.Genre
	var actors []*entity.Actor

	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		if genres, err = resolveGenres(ctx, tx, requestedGenres); err != nil {
			return err
		}
		if actors, err = resolveActors(ctx, tx, requestedActors); err != nil {
			return err
		}

		if err := tx.Movie.Create(ctx, movie); err != nil {
			return fmt.Errorf("create movie: %w", err)
		}

		// Create join rows in batch, keeping request order
		if len(genres) > 0 {
			movieGenres := make([]*entity.MovieGenre, len(genres))
			for i, genre := range genres {
				movieGenres[i] = &entity.MovieGenre{
					JoinBase: entity.JoinBase{MovieID: movie.ID, Position: i, CreatedAt: now},
					GenreID:  genre.ID,
				}
			}
			if err := tx.MovieGenre.CreateBatch(ctx, movieGenres); err != nil {
				return fmt.Errorf("create movie-genre relationships: %w", err)
			}
		}

		if len(actors) > 0 {
			movieActors := make([]*entity.MovieActor, len(actors))
			for i, actor := range actors {
				movieActors[i] = &entity.MovieActor{
					JoinBase: entity.JoinBase{MovieID: movie.ID, Position: i, CreatedAt: now},
					ActorID:  actor.ID,
				}
			}
			if err := tx.MovieActor.CreateBatch(ctx, movieActors); err != nil {
				return fmt.Errorf("create movie-actor relationships: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("Failed to create movie",
				zap.Error(err),
				zap.String("title", req.Title),
			)
		}
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.Int("genre_count", len(genres)),
		zap.Int("actor_count", len(actors)),
	)

	movieResp := response.MovieToResponse(movie, actors, genres)
	return &movieResp, nil
}

func (s *movieService) PatchMovie(ctx context.Context, id int64, patch request.Patch) (*response.MovieResponse, error) {
	var result *response.MovieResponse

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		movie, err := s.findMovie(ctx, tx, id)
		if err != nil {
			return err
		}

		draft := &movieDraft{movie: *movie}
		pc := &patchContext{ctx: ctx, repo: tx, pathID: id}
		if err := applyPatch(pc, moviePatchFields, patch, draft, rejectUnknownMovieField); err != nil {
			return err
		}

		draft.movie.UpdatedAt = time.Now()
		if err := tx.Movie.Update(ctx, &draft.movie); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Movie not found with id %d", id)
			}
			return fmt.Errorf("update movie: %w", err)
		}
		if draft.genres != nil {
			if err := tx.MovieGenre.ReplaceForMovie(ctx, id, genreIDs(draft.genres)); err != nil {
				return fmt.Errorf("replace movie genres: %w", err)
			}
		}
		if draft.actors != nil {
			if err := tx.MovieActor.ReplaceForMovie(ctx, id, actorIDs(draft.actors)); err != nil {
				return fmt.Errorf("replace movie actors: %w", err)
			}
		}

		data, err := movieResponses(ctx, tx, []*entity.Movie{&draft.movie})
		if err != nil {
			return err
		}
		result = &data[0]
		return nil
	})
	if err != nil {
		s.log.Warn("Patch movie failed",
			zap.Error(err),
			zap.Int64("movie_id", id),
			zap.Strings("fields", patch.Names()),
		)
		return nil, err
	}

	s.log.Info("Movie patched",
		zap.Int64("movie_id", id),
		zap.Strings("fields", patch.Names()),
	)
	return result, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if _, err := s.findMovie(ctx, tx, id); err != nil {
			return err
		}

		if err := tx.MovieActor.DeleteByMovieID(ctx, id); err != nil {
			return fmt.Errorf("delete movie actors: %w", err)
		}
		if err := tx.MovieGenre.DeleteByMovieID(ctx, id); err != nil {
			return fmt.Errorf("delete movie genres: %w", err)
		}
		if err := tx.Movie.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Movie not found with id %d", id)
			}
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
