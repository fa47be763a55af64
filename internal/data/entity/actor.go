package entity

import (
	"time"
)

type Actor struct {
	Base
	Name      string    `db:"name"`
	BirthDate time.Time `db:"birth_date"`
}
