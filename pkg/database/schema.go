package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// schemaStatements create the tables when missing. They are idempotent and run
// at start-up when DB_AUTO_MIGRATE is on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		release_year INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		release_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS actors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		birth_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS movie_actors (
		movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		actor_id BIGINT NOT NULL REFERENCES actors(id),
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (movie_id, actor_id)
	)`,
	`CREATE TABLE IF NOT EXISTS movie_genres (
		movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		genre_id BIGINT NOT NULL REFERENCES genres(id),
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (movie_id, genre_id)
	)`,
	// databases created before release_year/release_date existed
	`ALTER TABLE movies ADD COLUMN IF NOT EXISTS release_year INTEGER`,
	`ALTER TABLE movies ADD COLUMN IF NOT EXISTS release_date DATE`,
	`CREATE INDEX IF NOT EXISTS idx_movie_actors_actor_id ON movie_actors (actor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movie_genres_genre_id ON movie_genres (genre_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_release_year ON movies (release_year)`,
}

// EnsureSchema applies schemaStatements in order.
func EnsureSchema(ctx context.Context, db Querier, log *zap.Logger) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Error("Schema statement failed", zap.Int("statement", i), zap.Error(err))
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}

	log.Info("Schema ensured", zap.Int("statements", len(schemaStatements)))
	return nil
}
