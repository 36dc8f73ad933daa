// Package authz holds the ownership check shared by every review and
// comment mutation.
package authz

import "reviewhub/internal/apperr"

// RequireOwner permits a mutation only when the resource's recorded
// author matches the acting identity. Callers must resolve the resource
// first: a missing resource is "not found", never "forbidden".
func RequireOwner(ownerID, actorID string) error {
	if ownerID != actorID {
		return apperr.Authorization("you do not own this resource")
	}
	return nil
}
