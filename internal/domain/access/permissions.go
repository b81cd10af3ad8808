package access

import "errors"

// Permission is a stateless access predicate. HasPermission is evaluated for every request on a
// resource, HasObjectPermission additionally for requests that target one object.
type Permission interface {
	HasPermission(c Caller, method string) bool
	HasObjectPermission(c Caller, method string, authorID uint) bool
}

var (
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
)

// AdminOnly permits authenticated admins and superusers.
type AdminOnly struct{}

func (AdminOnly) HasPermission(c Caller, _ string) bool {
	return c.Authenticated() && c.IsAdmin()
}

func (p AdminOnly) HasObjectPermission(c Caller, method string, _ uint) bool {
	return p.HasPermission(c, method)
}

// AuthorOrReadOnly permits reads to anyone and writes to the author only.
type AuthorOrReadOnly struct{}

func (AuthorOrReadOnly) HasPermission(c Caller, method string) bool {
	return IsSafeMethod(method) || c.Authenticated()
}

func (AuthorOrReadOnly) HasObjectPermission(c Caller, method string, authorID uint) bool {
	return IsSafeMethod(method) || c.Owns(authorID)
}

// AdminOrAuthorOrReadOnly permits reads to anyone, creation to any authenticated user and
// changes to the author or staff.
type AdminOrAuthorOrReadOnly struct{}

func (AdminOrAuthorOrReadOnly) HasPermission(c Caller, method string) bool {
	return IsSafeMethod(method) || c.Authenticated()
}

func (AdminOrAuthorOrReadOnly) HasObjectPermission(c Caller, method string, authorID uint) bool {
	if IsSafeMethod(method) {
		return true
	}
	return c.Owns(authorID) || c.Privileges().Staff
}

// SafeMethodAdminPermission permits reads to anyone and every write to admins only.
type SafeMethodAdminPermission struct{}

func (SafeMethodAdminPermission) HasPermission(c Caller, method string) bool {
	return IsSafeMethod(method) || (c.Authenticated() && c.IsAdmin())
}

func (p SafeMethodAdminPermission) HasObjectPermission(c Caller, method string, _ uint) bool {
	return p.HasPermission(c, method)
}

// Check evaluates the list-level predicate.
func Check(p Permission, c Caller, method string) error {
	if p.HasPermission(c, method) {
		return nil
	}
	return deny(c)
}

// CheckObject evaluates the list-level predicate, then the object-level one.
func CheckObject(p Permission, c Caller, method string, authorID uint) error {
	if err := Check(p, c, method); err != nil {
		return err
	}
	if p.HasObjectPermission(c, method, authorID) {
		return nil
	}
	return deny(c)
}

func deny(c Caller) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	return ErrPermissionDenied
}
