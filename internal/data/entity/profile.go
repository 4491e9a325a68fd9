package entity

import (
	"time"

	"github.com/google/uuid"
)

const MaxBioLength = 500

type Profile struct {
	Base
	UserID         uuid.UUID `db:"user_id"`
	Bio            string    `db:"bio"`
	ProfilePicture *string   `db:"profile_picture"`
}

func (p *Profile) OwnerID() uuid.UUID { return p.UserID }

// Follow is a directed edge: FollowerID follows FollowingID. Both are profile ids.
type Follow struct {
	FollowerID  uuid.UUID `db:"follower_id"`
	FollowingID uuid.UUID `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}
