package auth

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrForbidden   = errors.New("principal may not access this restaurant")
)

type Role string

const (
	RoleMaitreD Role = "MaitreD"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMaitreD:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AccessControlList holds the restaurant ids a principal may administer.
type AccessControlList struct {
	restaurantIDs []int
}

func NewAccessControlList(restaurantIDs ...int) AccessControlList {
	ids := slices.Clone(restaurantIDs)
	slices.Sort(ids)
	return AccessControlList{restaurantIDs: slices.Compact(ids)}
}

func (a AccessControlList) Allows(restaurantID int) bool {
	_, found := slices.BinarySearch(a.restaurantIDs, restaurantID)
	return found
}

func (a AccessControlList) RestaurantIDs() []int {
	return slices.Clone(a.restaurantIDs)
}

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID uuid.UUID
	Roles  []Role
	Access AccessControlList
}

func (p Principal) HasRole(role Role) bool {
	return slices.Contains(p.Roles, role)
}

// CanAdminister reports whether the principal is a maitre d' of the restaurant.
func (p Principal) CanAdminister(restaurantID int) error {
	if !p.HasRole(RoleMaitreD) || !p.Access.Allows(restaurantID) {
		return ErrForbidden
	}
	return nil
}
