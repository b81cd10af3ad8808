package access

import (
	"net/http"
	"testing"

	"yamdb/internal/domain/users"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Caller{}
	author    = Caller{UserID: 1, Username: "author", Role: users.RoleUser}
	stranger  = Caller{UserID: 2, Username: "stranger", Role: users.RoleUser}
	moderator = Caller{UserID: 3, Username: "mod", Role: users.RoleModerator}
	admin     = Caller{UserID: 4, Username: "admin", Role: users.RoleAdmin}
	superuser = Caller{UserID: 5, Username: "root", Role: users.RoleUser, Superuser: true}
)

const authorID uint = 1

func TestCheckObject(t *testing.T) {
	tests := []struct {
		name   string
		perm   Permission
		caller Caller
		method string
		want   error
	}{
		{"admin only: anonymous", AdminOnly{}, anonymous, http.MethodGet, ErrNotAuthenticated},
		{"admin only: user read", AdminOnly{}, author, http.MethodGet, ErrPermissionDenied},
		{"admin only: moderator", AdminOnly{}, moderator, http.MethodPatch, ErrPermissionDenied},
		{"admin only: admin", AdminOnly{}, admin, http.MethodDelete, nil},
		{"admin only: superuser", AdminOnly{}, superuser, http.MethodPost, nil},

		{"author or read only: anonymous read", AuthorOrReadOnly{}, anonymous, http.MethodGet, nil},
		{"author or read only: anonymous write", AuthorOrReadOnly{}, anonymous, http.MethodPatch, ErrNotAuthenticated},
		{"author or read only: author write", AuthorOrReadOnly{}, author, http.MethodPatch, nil},
		{"author or read only: moderator write", AuthorOrReadOnly{}, moderator, http.MethodPatch, ErrPermissionDenied},

		{"staff: anonymous read", AdminOrAuthorOrReadOnly{}, anonymous, http.MethodHead, nil},
		{"staff: anonymous delete", AdminOrAuthorOrReadOnly{}, anonymous, http.MethodDelete, ErrNotAuthenticated},
		{"staff: author delete", AdminOrAuthorOrReadOnly{}, author, http.MethodDelete, nil},
		{"staff: stranger patch", AdminOrAuthorOrReadOnly{}, stranger, http.MethodPatch, ErrPermissionDenied},
		{"staff: moderator patch", AdminOrAuthorOrReadOnly{}, moderator, http.MethodPatch, nil},
		{"staff: admin delete", AdminOrAuthorOrReadOnly{}, admin, http.MethodDelete, nil},
		{"staff: superuser delete", AdminOrAuthorOrReadOnly{}, superuser, http.MethodDelete, nil},

		{"safe admin: anonymous read", SafeMethodAdminPermission{}, anonymous, http.MethodGet, nil},
		{"safe admin: anonymous write", SafeMethodAdminPermission{}, anonymous, http.MethodPost, ErrNotAuthenticated},
		{"safe admin: user write", SafeMethodAdminPermission{}, author, http.MethodPost, ErrPermissionDenied},
		{"safe admin: moderator write", SafeMethodAdminPermission{}, moderator, http.MethodDelete, ErrPermissionDenied},
		{"safe admin: admin write", SafeMethodAdminPermission{}, admin, http.MethodPatch, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckObject(tt.perm, tt.caller, tt.method, authorID)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheck_CreateOnAuthoredResources(t *testing.T) {
	for _, p := range []Permission{AuthorOrReadOnly{}, AdminOrAuthorOrReadOnly{}} {
		assert.NoError(t, Check(p, stranger, http.MethodPost))
		assert.ErrorIs(t, Check(p, anonymous, http.MethodPost), ErrNotAuthenticated)
	}
}

func TestCaller(t *testing.T) {
	assert.False(t, anonymous.Authenticated())
	assert.False(t, anonymous.Owns(0))
	assert.Equal(t, users.Privileges{}, anonymous.Privileges())

	assert.True(t, author.Owns(authorID))
	assert.False(t, stranger.Owns(authorID))
	assert.True(t, superuser.IsAdmin())

	c := CallerFor(users.User{ID: 9, Username: "x", Role: users.RoleModerator})
	assert.Equal(t, Caller{UserID: 9, Username: "x", Role: users.RoleModerator}, c)
}

func TestIsSafeMethod(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, IsSafeMethod(m), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.False(t, IsSafeMethod(m), m)
	}
}
