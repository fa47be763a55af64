package repository

import (
	"strings"
)

// MovieFilter narrows movie listings. Nil fields are not applied.
type MovieFilter struct {
	GenreID     *int64
	ReleaseYear *int
	ActorID     *int64
	// Title matches as a case-insensitive substring.
	Title *string
}

// PageQuery is a window over an ordered listing.
type PageQuery struct {
	Offset int
	Limit  int
	SortBy string
	Desc   bool
}

const (
	SortByID          = "id"
	SortByTitle       = "title"
	SortByReleaseYear = "releaseYear"
	SortByDuration    = "duration"
)

// movieSortColumns whitelists the properties a listing may be ordered by.
var movieSortColumns = map[string]string{
	SortByID:          "id",
	SortByTitle:       "title",
	SortByReleaseYear: "release_year",
	SortByDuration:    "duration",
}

// IsMovieSortProperty reports whether property can be used in PageQuery.SortBy.
func IsMovieSortProperty(property string) bool {
	_, ok := movieSortColumns[property]
	return ok
}

func movieSortColumn(property string) string {
	if column, ok := movieSortColumns[property]; ok {
		return column
	}
	return "id"
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// DedupeIDs drops repeated ids and keeps first-seen order.
func DedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
