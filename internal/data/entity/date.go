package entity

import "time"

const DateLayout = "2006-01-02"

// Today is the current civil date in UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPast reports whether date is strictly before today.
func IsPast(date time.Time) bool {
	return date.Before(Today())
}
