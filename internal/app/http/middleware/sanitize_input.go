package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"yamdb/internal/api/apierr"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON request body.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		// Only for JSON requests
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			apierr.Respond(c, apierr.Validation("Invalid body"))
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			apierr.Respond(c, apierr.Validation("Malformed JSON"))
			return
		}

		newBody, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			apierr.Respond(c, err)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// sanitizeValue walks decoded JSON. Sanitized text is unescaped again since responses are JSON,
// not HTML.
func sanitizeValue(policy *bluemonday.Policy, v any) any {
	switch t := v.(type) {
	case string:
		return html.UnescapeString(policy.Sanitize(t))
	case map[string]any:
		for k, item := range t {
			t[k] = sanitizeValue(policy, item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = sanitizeValue(policy, item)
		}
		return t
	default:
		return v
	}
}
