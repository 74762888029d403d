// Package authz decides whether an authenticated identity may mutate a
// content record. The rule is ownership: only the identity that authored a
// record may delete it. Roles are carried on the identity but grant no
// override here.
package authz

import (
	"github.com/google/uuid"

	"askstack/internal/models"
	"askstack/internal/utils"
)

// Identity is the authenticated caller as decoded from a session token.
// It carries id, email and role only, never a password hash.
type Identity struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// AuthorizeDelete allows the deletion of a record iff the acting identity
// owns it. Returns a Forbidden AppError otherwise.
func AuthorizeDelete(actor Identity, ownerID uuid.UUID, recordKind string) error {
	if actor.ID == uuid.Nil {
		return utils.NewUnauthorizedError("Authentication required")
	}
	if actor.ID != ownerID {
		return utils.NewForbiddenError("delete this " + recordKind)
	}
	return nil
}
