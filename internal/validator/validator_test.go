package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type createUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,role"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req createUserRequest
	return Bind(c, &req)
}

func TestBindAcceptsAssignableRole(t *testing.T) {
	for _, role := range []string{"STUDENT", "TEACHER", "STAFF", "PARENT", "ADMIN", "SUPER_ADMIN"} {
		assert.Nil(t, bindBody(t, `{"email":"a@sch.id","role":"`+role+`"}`), role)
	}
}

func TestBindRejectsUnknownRole(t *testing.T) {
	for _, role := range []string{"USER", "admin", "ROOT"} {
		fields := bindBody(t, `{"email":"a@sch.id","role":"`+role+`"}`)
		assert.Contains(t, fields, "role", role)
		assert.Contains(t, fields["role"], "must be one of")
	}
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	fields := bindBody(t, `{"role":"ADMIN"}`)
	assert.Contains(t, fields, "email")

	fields = bindBody(t, `{not json`)
	assert.Contains(t, fields, "detail")
}
