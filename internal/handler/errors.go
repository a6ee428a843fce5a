package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/middleware"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
)

// failWith maps service and repository errors onto the response envelope.
// Unrecognised errors are attached to the context for the request logger
// and reported as 500.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rbac.ErrForbidden):
		_ = c.Error(err)
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
	case errors.Is(err, service.ErrSelfAction):
		response.Fail(c, http.StatusForbidden, response.ErrActionForbidden)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, repository.ErrInvalidReference):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidReference)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramID parses the :id path parameter. On failure it has already written
// a 400 response.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// queryInt reads an optional positive integer query parameter; anything
// else counts as absent.
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func actorFrom(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Actor{Role: middleware.CallerRole(c)}
	}
	return service.Actor{UserID: claims.UserID, Role: claims.EffectiveRole()}
}
