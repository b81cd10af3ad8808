package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	NameMaxLength = 256
	SlugMaxLength = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var ErrSlugChars = errors.New("slug may contain only latin letters, digits, hyphens and underscores")

// ValidateYear rejects works dated after the current calendar year of now.
func ValidateYear(year int, now time.Time) error {
	if year > now.Year() {
		return fmt.Errorf("year %d is in the future", year)
	}
	return nil
}

func ValidateSlug(slug string) error {
	if len(slug) > SlugMaxLength {
		return fmt.Errorf("slug must be at most %d characters", SlugMaxLength)
	}
	if !slugPattern.MatchString(slug) {
		return ErrSlugChars
	}
	return nil
}
