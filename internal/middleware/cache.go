package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/config"
)

// captureWriter buffers the response so headers can still change after the
// handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int)        { cw.status = code }
func (cw *captureWriter) Write(b []byte) (int, error) { return cw.buf.Write(b) }

// etagOf returns a strong ETag for body.
func etagOf(body []byte) string {
	sum := sha1.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches reports whether an If-None-Match header names tag.
func etagMatches(header, tag string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || part == tag || strings.TrimPrefix(part, "W/") == tag {
			return true
		}
	}
	return false
}

// NewClientCache lets browsers cache successful GET responses for cfg.TTL
// and revalidate with If-None-Match afterwards. Nothing is stored on the
// server.
func NewClientCache(cfg config.ClientCacheConfig) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	maxAge := strconv.Itoa(int(cfg.TTL / time.Second))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			res := c.Response()
			orig := res.Writer
			cw := &captureWriter{ResponseWriter: orig, status: http.StatusOK}
			res.Writer = cw
			err := next(c)
			res.Writer = orig
			if err != nil {
				// nothing reached the client yet; let the error handler render
				res.Committed = false
				res.Status = http.StatusOK
				return err
			}

			body := cw.buf.Bytes()
			h := orig.Header()
			if cw.status == http.StatusOK {
				tag := etagOf(body)
				h.Set("ETag", tag)
				h.Set("Cache-Control", "public, max-age="+maxAge)
				if etagMatches(c.Request().Header.Get("If-None-Match"), tag) {
					h.Del("Content-Type")
					h.Del("Content-Length")
					res.Status = http.StatusNotModified
					orig.WriteHeader(http.StatusNotModified)
					return nil
				}
			}
			res.Status = cw.status
			orig.WriteHeader(cw.status)
			_, werr := orig.Write(body)
			return werr
		}
	}
}
