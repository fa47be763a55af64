package entity

type MovieGenre struct {
	JoinBase
	GenreID int64 `db:"genre_id"`
}
