package entity

import "github.com/google/uuid"

type Like struct {
	BaseSimple
	UserID   uuid.UUID `db:"user_id"`
	ReviewID uuid.UUID `db:"review_id"`
}

func (l *Like) OwnerID() uuid.UUID { return l.UserID }
