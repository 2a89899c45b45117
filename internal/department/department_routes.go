package department

import (
	"leavetrack/internal/middleware"
	"leavetrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer rbac.Enforcer) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(enforcer, "department", "read"), handler.GetAll)
		departments.GET("/options", middleware.Authorize(enforcer, "department", "read"), handler.GetOptions)
		departments.GET("/:id", middleware.Authorize(enforcer, "department", "read"), handler.GetById)
		departments.GET("/:id/users", middleware.Authorize(enforcer, "department", "read"), handler.GetUsers)
		departments.POST("", middleware.Authorize(enforcer, "department", "manage"), handler.Create)
		departments.DELETE("/:id", middleware.Authorize(enforcer, "department", "manage"), handler.Delete)
	}
}
