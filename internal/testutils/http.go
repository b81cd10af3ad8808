package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	routes "yamdb/internal/app/http"
	"yamdb/internal/domain/users"
	"yamdb/internal/infra/tokens"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the full API router against the current test database and config.
func NewRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := routes.RegisterRoutes(r); err != nil {
		t.Fatalf("Failed to register routes: %v", err)
	}
	return r
}

// AccessToken issues an access token for u with the test configuration.
func AccessToken(t *testing.T, u *users.User) string {
	t.Helper()

	issuer, err := tokens.Default()
	if err != nil {
		t.Fatalf("Failed to build issuer: %v", err)
	}
	token, err := issuer.IssueAccess(*u)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// Do sends body as JSON (nil for none) with an optional bearer token.
func Do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorded JSON body into a T.
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
