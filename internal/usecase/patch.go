package usecase

import (
	"context"
	"strings"
	"time"

	"movie-api/internal/data/entity"
	"movie-api/internal/data/repository"
	"movie-api/internal/dto/request"
	"movie-api/pkg/apperror"
)

// patchContext is what a field setter may consult while validating.
type patchContext struct {
	ctx    context.Context
	repo   *repository.Repository
	pathID int64
}

// patchFunc validates one field value and writes it into the draft.
type patchFunc[D any] func(pc *patchContext, draft *D, value any) error

// applyPatch runs every field of patch through fields, in body order.
// Names missing from fields go to unknown, which may reject them.
func applyPatch[D any](pc *patchContext, fields map[string]patchFunc[D], patch request.Patch, draft *D, unknown func(name string) error) error {
	for _, field := range patch {
		set, ok := fields[field.Name]
		if !ok {
			if err := unknown(field.Name); err != nil {
				return err
			}
			continue
		}
		if err := set(pc, draft, field.Value); err != nil {
			return err
		}
	}
	return nil
}

// ==================== MOVIE ====================

type movieDraft struct {
	movie entity.Movie
	// nil leaves the stored set untouched
	actors []*entity.Actor
	genres []*entity.Genre
}

var moviePatchFields = map[string]patchFunc[movieDraft]{
	"id": func(pc *patchContext, d *movieDraft, value any) error {
		return checkBodyID(pc.pathID, value)
	},
	"title": func(pc *patchContext, d *movieDraft, value any) error {
		title, ok := value.(string)
		if !ok {
			return apperror.InvalidArgument("Invalid type for title")
		}
		if strings.TrimSpace(title) == "" {
			return apperror.InvalidArgument("Movie title cannot be null or empty")
		}
		d.movie.Title = title
		return nil
	},
	"releaseYear": func(pc *patchContext, d *movieDraft, value any) error {
		year, ok := coerceInt(value)
		if !ok {
			return apperror.InvalidArgument("Invalid type for releaseYear")
		}
		d.movie.ReleaseYear = year
		return nil
	},
	"duration": func(pc *patchContext, d *movieDraft, value any) error {
		duration, ok := coerceInt(value)
		if !ok {
			return apperror.InvalidArgument("Invalid type for duration")
		}
		d.movie.Duration = duration
		return nil
	},
	"genres": func(pc *patchContext, d *movieDraft, value any) error {
		list, ok := value.([]any)
		if !ok {
			return apperror.InvalidArgument("Invalid type for genres")
		}
		ids, err := referenceIDs(list, "genre", "genres")
		if err != nil {
			return err
		}
		genres, err := resolveGenres(pc.ctx, pc.repo, ids)
		if err != nil {
			return err
		}
		d.genres = genres
		if d.genres == nil {
			d.genres = []*entity.Genre{}
		}
		return nil
	},
	"actors": func(pc *patchContext, d *movieDraft, value any) error {
		list, ok := value.([]any)
		if !ok {
			return apperror.InvalidArgument("Invalid type for actors")
		}
		ids, err := referenceIDs(list, "actor", "actors")
		if err != nil {
			return err
		}
		actors, err := resolveActors(pc.ctx, pc.repo, ids)
		if err != nil {
			return err
		}
		d.actors = actors
		if d.actors == nil {
			d.actors = []*entity.Actor{}
		}
		return nil
	},
}

func rejectUnknownMovieField(name string) error {
	return apperror.InvalidArgument("Unknown field: %s", name)
}

// ==================== ACTOR ====================

var actorPatchFields = map[string]patchFunc[entity.Actor]{
	"id": func(pc *patchContext, a *entity.Actor, value any) error {
		return checkBodyID(pc.pathID, value)
	},
	"name": func(pc *patchContext, a *entity.Actor, value any) error {
		name, ok := value.(string)
		if !ok {
			return apperror.InvalidArgument("Invalid type for name")
		}
		if strings.TrimSpace(name) == "" {
			return apperror.InvalidArgument("Actor name cannot be null or empty")
		}
		a.Name = name
		return nil
	},
	"birthDate": func(pc *patchContext, a *entity.Actor, value any) error {
		raw, ok := value.(string)
		if !ok {
			return apperror.InvalidArgument("Invalid type for birthDate")
		}
		birthDate, err := time.Parse(entity.DateLayout, raw)
		if err != nil {
			return apperror.Malformed("Invalid date format for field 'birthDate': '%s'. Expected format is YYYY-MM-DD.", raw)
		}
		if !entity.IsPast(birthDate) {
			return apperror.InvalidArgument("Birth date must be in the past")
		}
		a.BirthDate = birthDate
		return nil
	},
}

// ==================== GENRE ====================

var genrePatchFields = map[string]patchFunc[entity.Genre]{
	"id": func(pc *patchContext, g *entity.Genre, value any) error {
		return checkBodyID(pc.pathID, value)
	},
	"name": func(pc *patchContext, g *entity.Genre, value any) error {
		name, ok := value.(string)
		if !ok {
			return apperror.InvalidArgument("Invalid type for name")
		}
		if strings.TrimSpace(name) == "" {
			return apperror.InvalidArgument("Genre name cannot be null or empty")
		}
		g.Name = name
		return nil
	},
}
