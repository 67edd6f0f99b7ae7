package entity

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleDelivery Role = "delivery"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleAdmin, RoleDelivery:
		return r, nil
	}
	return "", ErrUnknownRole
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Actor is whoever performs an operation. The zero value is an anonymous guest.
type Actor struct {
	UserID uint
	Role   Role
}

func Anonymous() Actor { return Actor{} }

func (a Actor) IsAnonymous() bool { return a.UserID == 0 }

// Is reports whether a signed-in actor holds one of the given roles.
func (a Actor) Is(roles ...Role) bool {
	if a.IsAnonymous() {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
