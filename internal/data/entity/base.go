package entity

import (
	"time"
)

type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// JoinBase is shared by the movie_* bridge rows.
type JoinBase struct {
	MovieID   int64     `db:"movie_id"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}
