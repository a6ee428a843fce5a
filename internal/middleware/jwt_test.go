package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/service"
)

func newTestAuth(t *testing.T) (*service.AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{JWTSecret: "middleware-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	return service.NewAuthService(cfg, rdb, nil, rbac.MustNewResolver(rbac.DefaultTable()), zerolog.Nop()), mr
}

func authedEngine(auth *service.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/me", RequireJWT(auth), RequireActiveSession(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CallerRole(c)})
	})
	return r
}

func call(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireJWTAndSession(t *testing.T) {
	auth, mr := newTestAuth(t)
	r := authedEngine(auth)
	user := &model.User{ID: 12, Name: "Pak Budi", Role: model.RoleTeacher}

	token, claims, err := auth.IssueToken(context.Background(), user)
	require.NoError(t, err)

	rec := call(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REQUIRED", string(errorCode(t, rec)))

	rec = call(r, "Basic abc")
	assert.Equal(t, "TOKEN_REQUIRED", string(errorCode(t, rec)))

	rec = call(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", string(errorCode(t, rec)))

	rec = call(r, "bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"TEACHER"}`, rec.Body.String())

	require.NoError(t, auth.Logout(context.Background(), claims))
	rec = call(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "SESSION_INVALIDATED", string(errorCode(t, rec)))

	token, _, err = auth.IssueToken(context.Background(), user)
	require.NoError(t, err)
	mr.Close()
	rec = call(r, "Bearer "+token)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNoStoreHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/x", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Values("Vary"), "Authorization")
}
