package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string `db:"title"`
	ReleaseYear int    `db:"release_year"`
	Duration    int    `db:"duration"`
	// ReleaseDateLegacy is kept for older readers of the table, set from
	// ReleaseYear on creation only.
	ReleaseDateLegacy *time.Time `db:"release_date"`
}

// maxLegacyYear is the last year a DATE column accepts as YYYY-MM-DD.
const maxLegacyYear = 9999

// LegacyReleaseDate returns January 1 of year, or nil when year is not
// positive or past maxLegacyYear.
func LegacyReleaseDate(year int) *time.Time {
	if year <= 0 || year > maxLegacyYear {
		return nil
	}
	date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &date
}
