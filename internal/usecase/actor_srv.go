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

type ActorService interface {
	// GetActors lists every actor, or those whose name contains name.
	GetActors(ctx context.Context, name *string) ([]response.ActorResponse, error)
	GetActorByID(ctx context.Context, id int64) (*response.ActorResponse, error)
	CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)
	PatchActor(ctx context.Context, id int64, patch request.Patch) (*response.ActorResponse, error)
	// DeleteActor refuses while movies still reference the actor, unless
	// force is set, in which case the actor is first removed from them.
	DeleteActor(ctx context.Context, id int64, force bool) error
}

type actorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewActorService(repo *repository.Repository, log *zap.Logger) ActorService {
	return &actorService{
		repo: repo,
		log:  log.With(zap.String("service", "actor")),
	}
}

func (s *actorService) GetActors(ctx context.Context, name *string) ([]response.ActorResponse, error) {
	actors, err := s.repo.Actor.FindAll(ctx, name)
	if err != nil {
		s.log.Error("Failed to get actors", zap.Error(err), zap.Stringp("name", name))
		return nil, fmt.Errorf("get actors: %w", err)
	}
	return response.ActorsToResponse(actors), nil
}

func (s *actorService) findActor(ctx context.Context, repo *repository.Repository, id int64) (*entity.Actor, error) {
	actor, err := repo.Actor.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get actor by ID",
			zap.Error(err),
			zap.Int64("actor_id", id),
		)
		return nil, fmt.Errorf("get actor by id: %w", err)
	}
	if actor == nil {
		return nil, apperror.NotFound("Actor not found with id %d", id)
	}
	return actor, nil
}

func (s *actorService) GetActorByID(ctx context.Context, id int64) (*response.ActorResponse, error) {
	actor, err := s.findActor(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	actorResp := response.ActorToResponse(actor)
	return &actorResp, nil
}

func (s *actorService) CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	errs := utils.ValidateStruct(req)
	if req.BirthDate != nil && !entity.IsPast(req.BirthDate.Time) {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["birthDate"] = "Birth date must be in the past"
	}
	if len(errs) > 0 {
		s.log.Warn("Create actor validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	now := time.Now()
	actor := &entity.Actor{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		BirthDate: req.BirthDate.Time,
	}

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		return tx.Actor.Create(ctx, actor)
	})
	if err != nil {
		s.log.Error("Failed to create actor", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.log.Info("Actor created", zap.Int64("actor_id", actor.ID), zap.String("name", actor.Name))

	actorResp := response.ActorToResponse(actor)
	return &actorResp, nil
}

func (s *actorService) PatchActor(ctx context.Context, id int64, patch request.Patch) (*response.ActorResponse, error) {
	var patched entity.Actor

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		actor, err := s.findActor(ctx, tx, id)
		if err != nil {
			return err
		}

		patched = *actor
		pc := &patchContext{ctx: ctx, repo: tx, pathID: id}
		err = applyPatch(pc, actorPatchFields, patch, &patched, func(name string) error {
			s.log.Warn("Unknown actor field ignored", zap.String("field", name), zap.Int64("actor_id", id))
			return nil
		})
		if err != nil {
			return err
		}

		patched.UpdatedAt = time.Now()
		if err := tx.Actor.Update(ctx, &patched); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Actor not found with id %d", id)
			}
			return fmt.Errorf("update actor: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Patch actor failed",
			zap.Error(err),
			zap.Int64("actor_id", id),
			zap.Strings("fields", patch.Names()),
		)
		return nil, err
	}

	s.log.Info("Actor patched", zap.Int64("actor_id", id), zap.Strings("fields", patch.Names()))

	actorResp := response.ActorToResponse(&patched)
	return &actorResp, nil
}

func (s *actorService) DeleteActor(ctx context.Context, id int64, force bool) error {
	var detached int

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		actor, err := s.findActor(ctx, tx, id)
		if err != nil {
			return err
		}

		dependents, err := tx.MovieActor.FindByActorID(ctx, id)
		if err != nil {
			return fmt.Errorf("find movies of actor: %w", err)
		}

		count := len(dependents)
		if count > 0 && !force {
			return apperror.InvalidArgument("Unable to delete actor '%s' as they are associated with %d movies", actor.Name, count)
		}

		if count > 0 {
			if _, err := tx.MovieActor.DeleteByActorID(ctx, id); err != nil {
				return fmt.Errorf("detach actor from movies: %w", err)
			}
			detached = count
		}

		if err := tx.Actor.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NotFound("Actor not found with id %d", id)
			}
			return fmt.Errorf("delete actor: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Delete actor failed", zap.Error(err), zap.Int64("actor_id", id), zap.Bool("force", force))
		return err
	}

	s.log.Info("Actor deleted",
		zap.Int64("actor_id", id),
		zap.Bool("force", force),
		zap.Int("detached_movies", detached),
	)
	return nil
}
