package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"movie-api/internal/data/entity"

	"go.uber.org/zap"
)

// memoryStore backs the in-memory driver. A unit of work holds mu for its
// whole run, so other callers never see its partial writes, and is restored
// from a snapshot unless it returns nil.
type memoryStore struct {
	mu   sync.RWMutex
	data memoryData
	log  *zap.Logger
}

type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// heldLock is used by the repositories handed to a unit of work, which
// already owns the store lock.
type heldLock struct{}

func (heldLock) Lock()    {}
func (heldLock) Unlock()  {}
func (heldLock) RLock()   {}
func (heldLock) RUnlock() {}

type memoryData struct {
	movies      map[int64]entity.Movie
	actors      map[int64]entity.Actor
	genres      map[int64]entity.Genre
	movieActors []entity.MovieActor
	movieGenres []entity.MovieGenre

	lastMovieID int64
	lastActorID int64
	lastGenreID int64
}

func (d memoryData) clone() memoryData {
	out := d
	out.movies = make(map[int64]entity.Movie, len(d.movies))
	for id, m := range d.movies {
		if m.ReleaseDateLegacy != nil {
			date := *m.ReleaseDateLegacy
			m.ReleaseDateLegacy = &date
		}
		out.movies[id] = m
	}
	out.actors = make(map[int64]entity.Actor, len(d.actors))
	for id, a := range d.actors {
		out.actors[id] = a
	}
	out.genres = make(map[int64]entity.Genre, len(d.genres))
	for id, g := range d.genres {
		out.genres[id] = g
	}
	out.movieActors = append([]entity.MovieActor(nil), d.movieActors...)
	out.movieGenres = append([]entity.MovieGenre(nil), d.movieGenres...)
	return out
}

// NewMemoryRepository returns a Repository kept entirely in process memory.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := &memoryStore{
		data: memoryData{
			movies: make(map[int64]entity.Movie),
			actors: make(map[int64]entity.Actor),
			genres: make(map[int64]entity.Genre),
		},
		log: log.With(zap.String("repository", "memory")),
	}

	inner := store.repository(heldLock{})
	outer := store.repository(&store.mu)
	outer.runTx = func(ctx context.Context, fn func(repo *Repository) error) (err error) {
		store.mu.Lock()
		defer store.mu.Unlock()

		snapshot := store.data.clone()
		committed := false
		defer func() {
			if committed {
				return
			}
			// also reached when fn panics
			store.data = snapshot
			store.log.Debug("Unit of work rolled back", zap.Error(err))
		}()

		if err = fn(inner); err != nil {
			return err
		}
		committed = true
		return nil
	}

	return outer
}

func (s *memoryStore) repository(lk rwLocker) *Repository {
	repo := &Repository{
		Movie:      &memoryMovieRepository{s, lk},
		Actor:      &memoryActorRepository{s, lk},
		Genre:      &memoryGenreRepository{s, lk},
		MovieActor: &memoryMovieActorRepository{s, lk},
		MovieGenre: &memoryMovieGenreRepository{s, lk},
	}
	repo.runTx = runDirect(repo)
	return repo
}

// ==================== MOVIES ====================

type memoryMovieRepository struct {
	s  *memoryStore
	lk rwLocker
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	r.s.data.lastMovieID++
	movie.ID = r.s.data.lastMovieID
	r.s.data.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	movie, ok := r.s.data.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (r *memoryMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.movies[movie.ID]; !ok {
		return ErrNotFound
	}
	r.s.data.movies[movie.ID] = *movie
	return nil
}

func (r *memoryMovieRepository) Delete(ctx context.Context, id int64) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.movies[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.data.movies, id)
	return nil
}

func (r *memoryMovieRepository) matches(movie entity.Movie, filter MovieFilter) bool {
	if filter.GenreID != nil && !r.s.hasGenre(movie.ID, *filter.GenreID) {
		return false
	}
	if filter.ReleaseYear != nil && movie.ReleaseYear != *filter.ReleaseYear {
		return false
	}
	if filter.ActorID != nil && !r.s.hasActor(movie.ID, *filter.ActorID) {
		return false
	}
	if filter.Title != nil && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(*filter.Title)) {
		return false
	}
	return true
}

func (r *memoryMovieRepository) FindAll(ctx context.Context, filter MovieFilter, page *PageQuery) ([]*entity.Movie, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var movies []*entity.Movie
	for _, movie := range r.s.data.movies {
		if r.matches(movie, filter) {
			m := movie
			movies = append(movies, &m)
		}
	}

	var sortBy string
	var desc bool
	if page != nil {
		sortBy, desc = page.SortBy, page.Desc
	}
	sort.Slice(movies, func(i, j int) bool {
		a, b := movies[i], movies[j]
		var cmp int
		switch sortBy {
		case SortByTitle:
			cmp = strings.Compare(a.Title, b.Title)
		case SortByReleaseYear:
			cmp = a.ReleaseYear - b.ReleaseYear
		case SortByDuration:
			cmp = a.Duration - b.Duration
		}
		if cmp == 0 {
			if sortBy == SortByID || sortBy == "" {
				if desc {
					return a.ID > b.ID
				}
			}
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	if page == nil {
		return movies, nil
	}
	if page.Offset >= len(movies) {
		return nil, nil
	}
	end := page.Offset + page.Limit
	if end > len(movies) {
		end = len(movies)
	}
	return movies[page.Offset:end], nil
}

func (r *memoryMovieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var total int64
	for _, movie := range r.s.data.movies {
		if r.matches(movie, filter) {
			total++
		}
	}
	return total, nil
}

func (s *memoryStore) hasGenre(movieID, genreID int64) bool {
	for _, mg := range s.data.movieGenres {
		if mg.MovieID == movieID && mg.GenreID == genreID {
			return true
		}
	}
	return false
}

func (s *memoryStore) hasActor(movieID, actorID int64) bool {
	for _, ma := range s.data.movieActors {
		if ma.MovieID == movieID && ma.ActorID == actorID {
			return true
		}
	}
	return false
}

// ==================== ACTORS ====================

type memoryActorRepository struct {
	s  *memoryStore
	lk rwLocker
}

func (r *memoryActorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	r.s.data.lastActorID++
	actor.ID = r.s.data.lastActorID
	r.s.data.actors[actor.ID] = *actor
	return nil
}

func (r *memoryActorRepository) FindByID(ctx context.Context, id int64) (*entity.Actor, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	actor, ok := r.s.data.actors[id]
	if !ok {
		return nil, nil
	}
	return &actor, nil
}

func (r *memoryActorRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Actor, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var actors []*entity.Actor
	for _, id := range DedupeIDs(ids) {
		if actor, ok := r.s.data.actors[id]; ok {
			actors = append(actors, &actor)
		}
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

func (r *memoryActorRepository) FindAll(ctx context.Context, name *string) ([]*entity.Actor, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var actors []*entity.Actor
	for _, actor := range r.s.data.actors {
		if name != nil && !strings.Contains(strings.ToLower(actor.Name), strings.ToLower(*name)) {
			continue
		}
		a := actor
		actors = append(actors, &a)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

func (r *memoryActorRepository) Update(ctx context.Context, actor *entity.Actor) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.actors[actor.ID]; !ok {
		return ErrNotFound
	}
	r.s.data.actors[actor.ID] = *actor
	return nil
}

func (r *memoryActorRepository) Delete(ctx context.Context, id int64) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.actors[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.data.actors, id)
	return nil
}

// ==================== GENRES ====================

type memoryGenreRepository struct {
	s  *memoryStore
	lk rwLocker
}

func (r *memoryGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	r.s.data.lastGenreID++
	genre.ID = r.s.data.lastGenreID
	r.s.data.genres[genre.ID] = *genre
	return nil
}

func (r *memoryGenreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	genre, ok := r.s.data.genres[id]
	if !ok {
		return nil, nil
	}
	return &genre, nil
}

func (r *memoryGenreRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Genre, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var genres []*entity.Genre
	for _, id := range DedupeIDs(ids) {
		if genre, ok := r.s.data.genres[id]; ok {
			genres = append(genres, &genre)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (r *memoryGenreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	genres := make([]*entity.Genre, 0, len(r.s.data.genres))
	for _, genre := range r.s.data.genres {
		g := genre
		genres = append(genres, &g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (r *memoryGenreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.genres[genre.ID]; !ok {
		return ErrNotFound
	}
	r.s.data.genres[genre.ID] = *genre
	return nil
}

func (r *memoryGenreRepository) Delete(ctx context.Context, id int64) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	if _, ok := r.s.data.genres[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.data.genres, id)
	return nil
}

// ==================== BRIDGE TABLES ====================

type memoryMovieActorRepository struct {
	s  *memoryStore
	lk rwLocker
}

func (r *memoryMovieActorRepository) CreateBatch(ctx context.Context, movieActors []*entity.MovieActor) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	for _, ma := range movieActors {
		r.s.data.movieActors = append(r.s.data.movieActors, *ma)
	}
	return nil
}

func (r *memoryMovieActorRepository) ReplaceForMovie(ctx context.Context, movieID int64, actorIDs []int64) error {
	if err := r.DeleteByMovieID(ctx, movieID); err != nil {
		return err
	}

	actorIDs = DedupeIDs(actorIDs)
	movieActors := make([]*entity.MovieActor, len(actorIDs))
	for i, actorID := range actorIDs {
		movieActors[i] = &entity.MovieActor{
			JoinBase: entity.JoinBase{MovieID: movieID, Position: i},
			ActorID:  actorID,
		}
	}
	return r.CreateBatch(ctx, movieActors)
}

func (r *memoryMovieActorRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	kept := r.s.data.movieActors[:0]
	for _, ma := range r.s.data.movieActors {
		if ma.MovieID != movieID {
			kept = append(kept, ma)
		}
	}
	r.s.data.movieActors = kept
	return nil
}

func (r *memoryMovieActorRepository) DeleteByActorID(ctx context.Context, actorID int64) (int64, error) {
	r.lk.Lock()
	defer r.lk.Unlock()

	var removed int64
	kept := r.s.data.movieActors[:0]
	for _, ma := range r.s.data.movieActors {
		if ma.ActorID == actorID {
			removed++
			continue
		}
		kept = append(kept, ma)
	}
	r.s.data.movieActors = kept
	return removed, nil
}

func (r *memoryMovieActorRepository) FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieActor, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	wanted := make(map[int64]bool, len(movieIDs))
	for _, id := range movieIDs {
		wanted[id] = true
	}

	var out []*entity.MovieActor
	for _, ma := range r.s.data.movieActors {
		if wanted[ma.MovieID] {
			row := ma
			out = append(out, &row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MovieID != out[j].MovieID {
			return out[i].MovieID < out[j].MovieID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *memoryMovieActorRepository) FindByActorID(ctx context.Context, actorID int64) ([]*entity.MovieActor, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var out []*entity.MovieActor
	for _, ma := range r.s.data.movieActors {
		if ma.ActorID == actorID {
			row := ma
			out = append(out, &row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}

type memoryMovieGenreRepository struct {
	s  *memoryStore
	lk rwLocker
}

func (r *memoryMovieGenreRepository) CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	for _, mg := range movieGenres {
		r.s.data.movieGenres = append(r.s.data.movieGenres, *mg)
	}
	return nil
}

func (r *memoryMovieGenreRepository) ReplaceForMovie(ctx context.Context, movieID int64, genreIDs []int64) error {
	if err := r.DeleteByMovieID(ctx, movieID); err != nil {
		return err
	}

	genreIDs = DedupeIDs(genreIDs)
	movieGenres := make([]*entity.MovieGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		movieGenres[i] = &entity.MovieGenre{
			JoinBase: entity.JoinBase{MovieID: movieID, Position: i},
			GenreID:  genreID,
		}
	}
	return r.CreateBatch(ctx, movieGenres)
}

func (r *memoryMovieGenreRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	r.lk.Lock()
	defer r.lk.Unlock()

	kept := r.s.data.movieGenres[:0]
	for _, mg := range r.s.data.movieGenres {
		if mg.MovieID != movieID {
			kept = append(kept, mg)
		}
	}
	r.s.data.movieGenres = kept
	return nil
}

func (r *memoryMovieGenreRepository) DeleteByGenreID(ctx context.Context, genreID int64) (int64, error) {
	r.lk.Lock()
	defer r.lk.Unlock()

	var removed int64
	kept := r.s.data.movieGenres[:0]
	for _, mg := range r.s.data.movieGenres {
		if mg.GenreID == genreID {
			removed++
			continue
		}
		kept = append(kept, mg)
	}
	r.s.data.movieGenres = kept
	return removed, nil
}

func (r *memoryMovieGenreRepository) FindByMovieIDs(ctx context.Context, movieIDs []int64) ([]*entity.MovieGenre, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	wanted := make(map[int64]bool, len(movieIDs))
	for _, id := range movieIDs {
		wanted[id] = true
	}

	var out []*entity.MovieGenre
	for _, mg := range r.s.data.movieGenres {
		if wanted[mg.MovieID] {
			row := mg
			out = append(out, &row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MovieID != out[j].MovieID {
			return out[i].MovieID < out[j].MovieID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *memoryMovieGenreRepository) FindByGenreID(ctx context.Context, genreID int64) ([]*entity.MovieGenre, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()

	var out []*entity.MovieGenre
	for _, mg := range r.s.data.movieGenres {
		if mg.GenreID == genreID {
			row := mg
			out = append(out, &row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}
