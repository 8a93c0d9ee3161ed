package auth

import "fmt"

// Role is the closed set of permission classes a user can hold.
// Adding a value here forces a review of every rbac.Require call site.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("auth: unknown role %q", raw)
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
