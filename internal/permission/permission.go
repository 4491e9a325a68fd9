// Package permission decides whether an acting account may touch a record.
//
// Reads are open to everyone. Writes to an owned record are limited to its
// owner. Records that are not owned (movies) are writable by any
// authenticated account, which the router enforces.
package permission

import (
	"errors"
	"net/http"

	"github.com/hamza13-12/flickfeed/internal/data/entity"

	"github.com/google/uuid"
)

var ErrDenied = errors.New("you do not have permission to perform this action")

type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

func (a Action) String() string {
	if a == ActionRead {
		return "read"
	}
	return "write"
}

// IsSafeMethod reports whether an HTTP method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func ActionFromMethod(method string) Action {
	if IsSafeMethod(method) {
		return ActionRead
	}
	return ActionWrite
}

// OwnerOrReadOnly allows any read and a write only when actor owns obj.
func OwnerOrReadOnly(actor uuid.UUID, action Action, obj entity.Owned) error {
	if action == ActionRead {
		return nil
	}
	if obj == nil || actor == uuid.Nil || obj.OwnerID() != actor {
		return ErrDenied
	}
	return nil
}
