package entity

import (
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Text    string    `db:"text"`
	Rating  int       `db:"rating"`
}

func (r *Review) OwnerID() uuid.UUID { return r.UserID }
