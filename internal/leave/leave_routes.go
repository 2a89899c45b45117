package leave

import (
	"leavetrack/internal/middleware"
	"leavetrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policyHandler *PolicyHandler, enforcer rbac.Enforcer, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		read := middleware.Authorize(enforcer, "leave", "read")
		manage := middleware.Authorize(enforcer, "leave", "manage")

		leaves.POST("", middleware.Authorize(enforcer, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.PUT("/:id", middleware.Authorize(enforcer, "leave", "update"), handler.Update)
		leaves.PUT("/:id/approve", manage, handler.Approve)
		leaves.PUT("/:id/reject", manage, handler.Reject)
		leaves.DELETE("/:id", manage, handler.Delete)

		leaves.GET("", manage, handler.GetAll)
		leaves.GET("/filter", manage, handler.Filter)
		leaves.GET("/me", read, handler.GetMine)
		leaves.GET("/me/summary", read, handler.MySummary)
		leaves.GET("/workdays", read, handler.ComputeWorkDays)
		leaves.GET("/date-range", manage, handler.GetByDateRange)
		leaves.GET("/status/:status", manage, handler.GetByStatus)
		leaves.GET("/type/:type", manage, handler.GetByType)
		leaves.GET("/user/:userId", manage, handler.GetByUser)
		leaves.GET("/user/:userId/summary", manage, handler.Summary)
		leaves.GET("/user/:userId/check-limit", manage, handler.CheckLimit)
		leaves.GET("/department/:departmentId", manage, handler.GetByDepartment)
		leaves.GET("/:id", read, handler.GetById)
	}

	admin := r.Group("/admin/leaves/config")
	admin.Use(middleware.AuthMiddleware(), middleware.Authorize(enforcer, "*", "*"))
	{
		admin.GET("", policyHandler.Get)
		admin.PUT("", policyHandler.Update)
	}
}
