// Package access decides what an authenticated identity may do within a
// classroom. The decision is re-evaluated per classroom on every call and is
// never cached: a user can be owner of one classroom and a plain viewer of
// another.
package access

import (
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/models"
)

// Role is the capability an actor holds for a single classroom.
type Role int

const (
	// RoleViewer may read the aggregate classroom balance, the student
	// directory and their own transaction history.
	RoleViewer Role = iota

	// RoleOwner is the treasurer who created the classroom. Only the owner
	// may record or delete transactions, add students and view the full
	// treasurer history.
	RoleOwner
)

func (r Role) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "viewer"
}

// RoleFor derives the actor's role for a classroom from the owner record.
func RoleFor(classroom *models.Classroom, actorID string) Role {
	if classroom != nil && classroom.OwnerID == actorID {
		return RoleOwner
	}
	return RoleViewer
}

// RequireOwner returns ErrorUnauthorized unless the actor owns the classroom.
func RequireOwner(classroom *models.Classroom, actorID string) error {
	if RoleFor(classroom, actorID) != RoleOwner {
		return fmt.Errorf("%w: actor %s is not the owner of classroom %s",
			common.ErrorUnauthorized, actorID, classroom.ID)
	}
	return nil
}
