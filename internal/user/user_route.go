package user

import (
	"leavetrack/internal/middleware"
	"leavetrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer rbac.Enforcer) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.Authorize(enforcer, "user", "manage"), handler.GetAll)
		users.GET("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.GetById)
		users.POST("", middleware.Authorize(enforcer, "user", "manage"), handler.Create)
		users.PUT("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.Update)
		users.DELETE("/:id", middleware.Authorize(enforcer, "user", "manage"), handler.Delete)
	}
}
