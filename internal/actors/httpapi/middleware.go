package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mtorres/eventia/internal/core/model"
)

const viewerKey = "viewer"

// withViewer resolves the X-User-Id header into the current user and stores it
// in the request context. Requests without the header proceed anonymously.
func (s *Server) withViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-Id")
		if raw == "" {
			c.Next()
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-User-Id header"})
			return
		}
		user, err := s.directory.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unknown user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not resolve user"})
			return
		}
		c.Set(viewerKey, user)
		c.Next()
	}
}

// viewer returns the resolved current user, or nil for anonymous requests.
func viewer(c *gin.Context) *model.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// mustViewer returns the current user, aborting with 403 when the request is
// anonymous. Callers must return immediately when ok is false.
func mustViewer(c *gin.Context) (*model.User, bool) {
	u := viewer(c)
	if u == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return nil, false
	}
	return u, true
}
