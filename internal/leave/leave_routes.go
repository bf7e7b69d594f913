package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave-requests")

	// employees submit without an account
	create := []gin.HandlerFunc{middleware.RateLimitByIP(1, 10)}
	if rdb != nil {
		create = append(create, middleware.Idempotency(rdb))
	}
	leaves.POST("", append(create, handler.Create)...)

	managed := leaves.Group("")
	managed.Use(middleware.AuthMiddleware(jwtSecret))
	{
		managed.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetAll)
		managed.GET("/export", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionExport), middleware.RateLimitByManager(0.2, 3), handler.Export)
		managed.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.GetByID)
		managed.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApprove), handler.UpdateStatus)
	}
}
