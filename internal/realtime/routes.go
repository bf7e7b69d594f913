package realtime

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, hub *Hub, rbacService middleware.RBACService, jwtSecret string) {
	r.GET("/leave-requests/ws",
		middleware.AuthMiddleware(jwtSecret),
		middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead),
		hub.ServeWS,
	)
}
