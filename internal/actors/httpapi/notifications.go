package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtorres/eventia/internal/core/model"
)

// listNotifications lists the viewer's notifications, newest first. The type
// query parameter ("historico" or "alerta") narrows the listing.
func (s *Server) listNotifications(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	typ := model.NotificationType(c.Query("type"))
	notifications, err := s.notifications.List(c.Request.Context(), user.ID, typ)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
