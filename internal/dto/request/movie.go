package request

// MovieRequest is the body of POST /api/movies. Actors and Genres hold
// reference entries, either {"id": 3} objects or bare ids.
type MovieRequest struct {
	Title       string   `json:"title" validate:"notblank"`
	ReleaseYear *Integer `json:"releaseYear" validate:"required"`
	Duration    *Integer `json:"duration" validate:"required"`
	Actors      []any    `json:"actors"`
	Genres      []any    `json:"genres"`
}

func (MovieRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"title":       "Title is required",
		"releaseYear": "Release year is required",
		"duration":    "Duration in minutes is required",
	}
}
