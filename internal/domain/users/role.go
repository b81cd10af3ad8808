package users

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Privileges are derived from a role, never stored.
type Privileges struct {
	Admin     bool
	Moderator bool
	// Staff may moderate content authored by others.
	Staff bool
}

// PrivilegesFor maps a role and the superuser flag to privilege flags.
// A superuser is always treated as an admin.
func PrivilegesFor(role Role, superuser bool) Privileges {
	if superuser || role == RoleAdmin {
		return Privileges{Admin: true, Staff: true}
	}
	if role == RoleModerator {
		return Privileges{Moderator: true, Staff: true}
	}
	return Privileges{}
}
