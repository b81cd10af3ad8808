package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"yamdb/internal/domain/users"

	"golang.org/x/crypto/hkdf"
)

const codeInfo = "yamdb confirmation-code"

// CodeGenerator issues confirmation codes bound to a user's id, email and state version.
// Codes are never stored: changing any bound field, or the expiry passing, invalidates them.
type CodeGenerator struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewCodeGenerator(secret string, ttl time.Duration) (*CodeGenerator, error) {
	if secret == "" {
		return nil, fmt.Errorf("confirmation code secret is empty")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(codeInfo)), key); err != nil {
		return nil, fmt.Errorf("derive confirmation key: %w", err)
	}
	return &CodeGenerator{key: key, ttl: ttl, now: time.Now}, nil
}

// Make returns "<expiry base36>-<hex mac>".
func (g *CodeGenerator) Make(u users.User) string {
	ts := strconv.FormatInt(g.now().Add(g.ttl).Unix(), 36)
	return ts + "-" + g.mac(u, ts)
}

// Check reports whether code was made for u's current state and has not expired.
func (g *CodeGenerator) Check(u users.User, code string) bool {
	ts, sig, ok := strings.Cut(code, "-")
	if !ok || ts == "" || sig == "" {
		return false
	}
	expiry, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return false
	}
	if g.now().Unix() > expiry {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(g.mac(u, ts)))
}

func (g *CodeGenerator) mac(u users.User, ts string) string {
	h := hmac.New(sha256.New, g.key)
	fmt.Fprintf(h, "%d|%d|%s|%s", u.ID, u.StateVersion, strings.ToLower(u.Email), ts)
	return hex.EncodeToString(h.Sum(nil)[:16])
}
