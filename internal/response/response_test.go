package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, &Pagination{Page: 2, PerPage: 20, TotalItems: 41, TotalPages: 3}, NewPagination(2, 20, 41))
	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 5).TotalPages)
}

func TestAbortFailUsesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		AbortFail(c, http.StatusForbidden, ErrPermissionDenied)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "6F9619FF-8B86-D011-B42D-00C04FC964FF")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", w.Header().Get("X-Request-ID"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrPermissionDenied, body.Error.Code)
	assert.Equal(t, "Izin ditolak.", body.Error.Message)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", body.Metadata.RequestID)
	assert.Nil(t, body.Data)
}

func TestSuccessWithPagination(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		SuccessWithPagination(c, http.StatusOK, []string{"a"}, NewPagination(1, 10, 1))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{"a"}, body["data"])
	assert.NotEmpty(t, body["metadata"].(map[string]any)["request_id"])
	assert.NotContains(t, body, "error")
}

func TestRequestIDReplacesUntrustedHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		Success(c, http.StatusOK, RequestID(c))
	})

	for _, raw := range []string{
		"",
		"req-123",
		"line\ninjected=true",
		strings.Repeat("a", 4096),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderRequestID, raw)
		r.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "header %q", raw)
		assert.NotEqual(t, raw, got)
	}
}
