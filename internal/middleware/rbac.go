package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/response"
)

// Guard builds route guards on top of a resolver. Every guard evaluates the
// caller's role from the JWT claims and aborts with 403 PERMISSION_DENIED
// before the handler runs.
type Guard struct {
	resolver *rbac.Resolver
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewGuard creates a Guard. m may be nil.
func NewGuard(resolver *rbac.Resolver, m *metrics.Metrics, log zerolog.Logger) *Guard {
	return &Guard{
		resolver: resolver,
		metrics:  m,
		log:      log.With().Str("component", "rbac_guard").Logger(),
	}
}

// RequirePermission admits callers holding p.
func (g *Guard) RequirePermission(p model.Permission) gin.HandlerFunc {
	return g.guard(rbac.RequirePermission, func(role model.Role) error {
		return g.resolver.Authorize(role, p)
	})
}

// RequireAllPermissions admits callers holding every one of perms.
func (g *Guard) RequireAllPermissions(perms ...model.Permission) gin.HandlerFunc {
	return g.guard(rbac.RequireAll, func(role model.Role) error {
		return g.resolver.AuthorizeAll(role, perms...)
	})
}

// RequireAnyPermission admits callers holding at least one of perms.
func (g *Guard) RequireAnyPermission(perms ...model.Permission) gin.HandlerFunc {
	return g.guard(rbac.RequireAny, func(role model.Role) error {
		return g.resolver.AuthorizeAny(role, perms...)
	})
}

// RequireRole admits the listed roles. SUPER_ADMIN always passes.
func (g *Guard) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return g.guard(rbac.RequireRole, func(role model.Role) error {
		return g.resolver.AuthorizeRole(role, roles...)
	})
}

func (g *Guard) guard(req rbac.Requirement, check func(model.Role) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CallerRole(c)
		err := check(role)
		g.metrics.ObserveDecision(role, req, err == nil)

		if err != nil {
			ev := g.log.Warn().
				Err(err).
				Str("role", string(role)).
				Str("method", c.Request.Method).
				Str("route", c.FullPath())
			if claims := GetClaims(c); claims != nil {
				ev = ev.Int("user_id", claims.UserID)
			}
			ev.Msg("access denied")

			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
