package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-api/internal/data/entity"
	"movie-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindByID(ctx context.Context, id int64) (*entity.Actor, error)
	// FindByIDs returns the actors that exist among ids, ordered by id.
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Actor, error)
	// FindAll lists actors ordered by id; a non-nil name filters by
	// case-insensitive substring.
	FindAll(ctx context.Context, name *string) ([]*entity.Actor, error)
	Update(ctx context.Context, actor *entity.Actor) error
	Delete(ctx context.Context, id int64) error
}

type actorRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewActorRepository(db database.Querier, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `
		INSERT INTO actors (name, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		actor.Name,
		actor.BirthDate,
		actor.CreatedAt,
		actor.UpdatedAt,
	).Scan(&actor.ID)

	if err != nil {
		r.log.Error("Failed to create actor",
			zap.Error(err),
			zap.String("name", actor.Name),
		)
		return fmt.Errorf("failed to create actor: %w", err)
	}

	return nil
}

func (r *actorRepository) FindByID(ctx context.Context, id int64) (*entity.Actor, error) {
	query := `SELECT id, name, birth_date, created_at, updated_at FROM actors WHERE id = $1`

	var actor entity.Actor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&actor.ID,
		&actor.Name,
		&actor.BirthDate,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find actor by ID",
			zap.Error(err),
			zap.Int64("actor_id", id),
		)
		return nil, fmt.Errorf("find actor by id: %w", err)
	}

	return &actor, nil
}

func (r *actorRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, birth_date, created_at, updated_at
		FROM actors
		WHERE id = ANY($1)
		ORDER BY id
	`

	return r.query(ctx, "find actors by ids", query, ids)
}

func (r *actorRepository) FindAll(ctx context.Context, name *string) ([]*entity.Actor, error) {
	if name != nil {
		query := `
			SELECT id, name, birth_date, created_at, updated_at
			FROM actors
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY id
		`
		return r.query(ctx, "find actors by name", query, escapeLike(*name))
	}

	query := `SELECT id, name, birth_date, created_at, updated_at FROM actors ORDER BY id`
	return r.query(ctx, "find all actors", query)
}

func (r *actorRepository) query(ctx context.Context, operation, query string, args ...any) ([]*entity.Actor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var actors []*entity.Actor
	for rows.Next() {
		var actor entity.Actor
		err := rows.Scan(
			&actor.ID,
			&actor.Name,
			&actor.BirthDate,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, &actor)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return actors, nil
}

func (r *actorRepository) Update(ctx context.Context, actor *entity.Actor) error {
	query := `UPDATE actors SET name = $2, birth_date = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		actor.ID,
		actor.Name,
		actor.BirthDate,
		actor.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update actor",
			zap.Error(err),
			zap.Int64("actor_id", actor.ID),
		)
		return fmt.Errorf("failed to update actor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *actorRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM actors WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete actor",
			zap.Error(err),
			zap.Int64("actor_id", id),
		)
		return fmt.Errorf("failed to delete actor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Actor deleted", zap.Int64("actor_id", id))
	return nil
}
