package domain

// Role is the coarse-grained permission level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles lists every assignable role.
var Roles = []Role{RoleUser, RoleAdmin}

// IsValid reports whether r is one of the fixed roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
