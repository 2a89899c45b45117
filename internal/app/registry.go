package app

import (
	"leavetrack/internal/auth"
	"leavetrack/internal/config"
	"leavetrack/internal/department"
	"leavetrack/internal/leave"
	"leavetrack/internal/messaging/kafka"
	"leavetrack/internal/middleware"
	"leavetrack/internal/rbac"
	"leavetrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Configuration ---
	leavePolicy := config.LeavePolicyFromEnv()
	tokenConfig := config.TokenConfigFromEnv()

	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	departmentService := department.NewService(departmentRepo, userRepo, rdb)
	userService := user.NewService(userRepo, departmentRepo, authRepo)
	leaveService := leave.NewService(leaveRepo, userRepo, departmentRepo, leavePolicy, gormDB, outboxRepo)
	authService := auth.NewService(authRepo, userRepo, departmentRepo, tokenConfig, gormDB)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService, rdb)
	leavePolicyHandler := leave.NewPolicyHandler(leavePolicy)
	authHandler := auth.NewHandler(authService)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, leavePolicyHandler, enforcer, rdb)
	}

	return nil
}
