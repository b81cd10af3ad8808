package users

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	ReservedUsername  = "me"
	UsernameMaxLength = 150
	EmailMaxLength    = 254
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var (
	ErrReservedUsername = errors.New(`the username "me" is reserved`)
	ErrUsernameChars    = errors.New("use only letters, digits and @/./+/-/_")
)

// ValidateUsername reports why name cannot be used as a username, or nil.
func ValidateUsername(name string) error {
	if name == ReservedUsername {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(name) {
		return ErrUsernameChars
	}
	if utf8.RuneCountInString(name) > UsernameMaxLength {
		return fmt.Errorf("username must be at most %d characters", UsernameMaxLength)
	}
	return nil
}
