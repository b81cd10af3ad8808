package access

import (
	"net/http"

	"yamdb/internal/domain/users"
)

// Caller is the identity a request acts as. The zero value is the anonymous caller.
type Caller struct {
	UserID    uint
	Username  string
	Role      users.Role
	Superuser bool
}

func CallerFor(u users.User) Caller {
	return Caller{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
	}
}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

func (c Caller) Privileges() users.Privileges {
	if !c.Authenticated() {
		return users.Privileges{}
	}
	return users.PrivilegesFor(c.Role, c.Superuser)
}

func (c Caller) IsAdmin() bool {
	return c.Privileges().Admin
}

func (c Caller) Owns(authorID uint) bool {
	return c.Authenticated() && c.UserID == authorID
}

// IsSafeMethod reports whether method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
