// Package apierr defines the errors handlers return and how they are rendered.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"yamdb/internal/domain/access"
	"yamdb/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotAuthenticated
	KindPermissionDenied
	KindNotFound
	KindConflictingIdentity
	KindTooManyRequests
)

func (k Kind) Status() int {
	switch k {
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

type Option func(*Error)

// WithField attaches a field-level message.
func WithField(field, msg string) Option {
	return func(e *Error) {
		if e.Fields == nil {
			e.Fields = map[string][]string{}
		}
		e.Fields[field] = append(e.Fields[field], msg)
	}
}

func New(kind Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: kind, Message: msg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Validation(msg string, opts ...Option) *Error {
	return New(KindValidation, msg, opts...)
}

// Field is a validation error about a single field.
func Field(field, msg string) *Error {
	return New(KindValidation, "invalid input", WithField(field, msg))
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func NotAuthenticated(msg string) *Error {
	return New(KindNotAuthenticated, msg)
}

func PermissionDenied(msg string) *Error {
	return New(KindPermissionDenied, msg)
}

func ConflictingIdentity(opts ...Option) *Error {
	return New(KindConflictingIdentity, "username and email belong to different accounts", opts...)
}

// Respond renders err and aborts the chain.
func Respond(c *gin.Context, err error) {
	e := From(err)
	if e == nil {
		logging.L.Error("unhandled error", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": e.Message}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.AbortWithStatusJSON(e.Kind.Status(), body)
}

// From converts known error values into an *Error, or returns nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := Validation("invalid input")
		for _, fe := range verrs {
			WithField(jsonFieldName(fe), describe(fe))(out)
		}
		return out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return Field(typeErr.Field, fmt.Sprintf("must be %s", typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return Validation("malformed JSON")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Validation("already exists")
	case errors.Is(err, access.ErrNotAuthenticated):
		return NotAuthenticated(err.Error())
	case errors.Is(err, access.ErrPermissionDenied):
		return PermissionDenied(err.Error())
	}
	return nil
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value is at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg(fe)
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

var tagMessages = map[string]func(validator.FieldError) string{}

// RegisterMessage sets the field message for a custom validation tag.
func RegisterMessage(tag string, msg func(validator.FieldError) string) {
	tagMessages[tag] = msg
}
