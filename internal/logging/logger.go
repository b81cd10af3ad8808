// Package logging holds the process logger and the gin request logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// L is the process-wide logger. Commands replace it during startup via Setup.
var L = New(os.Stderr)

// New creates a [log.Logger] writing to w with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr].
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true, ReportCaller: true})
}

// Setup configures L at the given level name ("debug", "info", "warn", "error").
// Unknown names fall back to info.
func Setup(w io.Writer, level string) *log.Logger {
	l := New(w)
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	L = l
	return l
}

// With returns a child of L carrying the key-value pairs.
func With(kv ...any) *log.Logger {
	return L.With(kv...)
}

// Requests logs one line per handled request.
func Requests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			L.Error("request", kv...)
		case status >= 400:
			L.Warn("request", kv...)
		default:
			L.Info("request", kv...)
		}
	}
}
