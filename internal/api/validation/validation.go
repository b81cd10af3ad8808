// Package validation registers the domain validators as gin binding tags.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"yamdb/internal/api/apierr"
	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/users"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the "username", "slug", "role" and "notfuture" tags and reports field
// errors by their JSON names. Safe to call more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("unexpected binding engine %T", binding.Validator.Engine()))
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		mustRegister(v, "username", func(fl validator.FieldLevel) bool {
			return users.ValidateUsername(fl.Field().String()) == nil
		})
		apierr.RegisterMessage("username", func(fe validator.FieldError) string {
			return users.ValidateUsername(fmt.Sprint(fe.Value())).Error()
		})

		mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
			return catalog.ValidateSlug(fl.Field().String()) == nil
		})
		apierr.RegisterMessage("slug", func(fe validator.FieldError) string {
			return catalog.ValidateSlug(fmt.Sprint(fe.Value())).Error()
		})

		mustRegister(v, "role", func(fl validator.FieldLevel) bool {
			return users.Role(fl.Field().String()).Valid()
		})
		apierr.RegisterMessage("role", func(validator.FieldError) string {
			return "must be one of: user, moderator, admin"
		})

		mustRegister(v, "notfuture", func(fl validator.FieldLevel) bool {
			return catalog.ValidateYear(int(fl.Field().Int()), time.Now()) == nil
		})
		apierr.RegisterMessage("notfuture", func(fe validator.FieldError) string {
			return fmt.Sprintf("year %v is in the future", fe.Value())
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validator: %v", tag, err))
	}
}
