package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressedEngine(body string) *gin.Engine {
	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{
		Quality:   brotli.DefaultCompression,
		MinLength: 64,
		Skipper:   SkipPaths("/metrics"),
	}))
	r.GET("/data", func(c *gin.Context) { c.String(http.StatusOK, body) })
	r.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, body) })
	return r
}

func get(r *gin.Engine, path, acceptEncoding string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBrotliCompressesLargeResponses(t *testing.T) {
	body := strings.Repeat("kelas XI RPL 2; ", 50)
	rec := get(compressedEngine(body), "/data", "gzip, br;q=0.9")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")

	plain, err := io.ReadAll(brotli.NewReader(rec.Body))
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
}

func TestBrotliPassesThroughSmallOrUnwantedResponses(t *testing.T) {
	small := "ok"
	rec := get(compressedEngine(small), "/data", "br")
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, small, rec.Body.String())

	large := strings.Repeat("x", 500)
	rec = get(compressedEngine(large), "/data", "gzip")
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, large, rec.Body.String())

	rec = get(compressedEngine(large), "/metrics", "br")
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, large, rec.Body.String())
}
