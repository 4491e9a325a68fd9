package entity

import "github.com/google/uuid"

type Comment struct {
	BaseSimple
	ReviewID uuid.UUID `db:"review_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
}

func (c *Comment) OwnerID() uuid.UUID { return c.AuthorID }
