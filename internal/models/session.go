package models

import "fmt"

// Role is the capability level carried by a session.
type Role string

const (
	// RoleAdmin may perform every mutation.
	RoleAdmin Role = "admin"
	// RoleMember is read-only.
	RoleMember Role = "member"
)

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanMutate reports whether the role may create, update or delete records.
func (r Role) CanMutate() bool {
	return r == RoleAdmin
}

// Session is the client-held proof of authentication.
//
// It is persisted by the client under the "currentUser" key and survives
// restarts until an explicit logout. Token is the signed credential presented
// to the server on every call.
type Session struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}
