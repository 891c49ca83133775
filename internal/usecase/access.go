package usecase

import (
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// Capability is a pure predicate over the caller and the owner of the
// resource being acted on. Routes compose them in order:
// authenticate, authorize role, authorize ownership.
type Capability func(caller entity.Caller, ownerID string) error

// Authenticated passes for any caller with an identity.
func Authenticated(caller entity.Caller, _ string) error {
	if caller.UserID == "" {
		return entity.ErrUnauthenticated
	}
	return nil
}

// HasRole passes when the caller holds one of roles.
func HasRole(roles ...entity.UserRole) Capability {
	return func(caller entity.Caller, _ string) error {
		for _, r := range roles {
			if caller.Role == r {
				return nil
			}
		}
		return fmt.Errorf("%w: role %q not permitted", entity.ErrForbidden, caller.Role)
	}
}

// IsKind passes when the caller's account kind is one of kinds.
func IsKind(kinds ...entity.AccountKind) Capability {
	return func(caller entity.Caller, _ string) error {
		for _, k := range kinds {
			if caller.Kind == k {
				return nil
			}
		}
		return fmt.Errorf("%w: account kind %q not permitted", entity.ErrForbidden, caller.Kind)
	}
}

// OwnsResource passes when the caller owns the resource.
func OwnsResource(caller entity.Caller, ownerID string) error {
	if ownerID == "" || caller.UserID != ownerID {
		return fmt.Errorf("%w: not the owner of this resource", entity.ErrForbidden)
	}
	return nil
}

// AnyOf passes when at least one capability passes; otherwise it returns the
// last failure.
func AnyOf(caps ...Capability) Capability {
	return func(caller entity.Caller, ownerID string) error {
		err := fmt.Errorf("%w: no capability granted", entity.ErrForbidden)
		for _, c := range caps {
			if err = c(caller, ownerID); err == nil {
				return nil
			}
		}
		return err
	}
}

// Authorize runs checks in order and stops at the first failure.
func Authorize(caller entity.Caller, ownerID string, checks ...Capability) error {
	for _, check := range checks {
		if err := check(caller, ownerID); err != nil {
			return err
		}
	}
	return nil
}

var isAdmin = HasRole(entity.UserRoleAdmin, entity.UserRoleSuperAdmin)

// ownerOrAdmin is the ownership policy of listings.
var ownerOrAdmin = AnyOf(OwnsResource, isAdmin)
