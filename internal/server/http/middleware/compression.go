package middleware

import (
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultMaxDecompressedBody bounds the inflated size of a gzip request body.
const DefaultMaxDecompressedBody int64 = 1 << 20

var errBodyTooLarge = errors.New("decompressed body too large")

// DecompressRequest inflates gzip encoded request bodies, reading at most
// maxBytes of decompressed data. Non-positive maxBytes uses the default.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDecompressedBody
	}
	return func(c *gin.Context) {
		if !strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = &limitedBody{r: reader, remaining: maxBytes}
		c.Request.ContentLength = -1
		c.Request.Header.Del("Content-Encoding")
		c.Request.Header.Del("Content-Length")
		c.Next()
	}
}

// limitedBody fails instead of truncating once the limit is exceeded, so
// handlers never act on a partially read form.
type limitedBody struct {
	r         io.Reader
	remaining int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.remaining < 0 {
		return 0, errBodyTooLarge
	}
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}
	n, err := b.r.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		return n, errBodyTooLarge
	}
	return n, err
}

func (b *limitedBody) Close() error { return nil }
