package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"current year", 2026, false},
		{"past", 1895, false},
		{"ancient", -500, false},
		{"next year", 2027, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYear(tt.year, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("sci-fi_2"))
	assert.ErrorIs(t, ValidateSlug("sci fi"), ErrSlugChars)
	assert.ErrorIs(t, ValidateSlug("фильм"), ErrSlugChars)
	assert.ErrorIs(t, ValidateSlug(""), ErrSlugChars)
	assert.Error(t, ValidateSlug(strings.Repeat("s", SlugMaxLength+1)))
	assert.NoError(t, ValidateSlug(strings.Repeat("s", SlugMaxLength)))
}
