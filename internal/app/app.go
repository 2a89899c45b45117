package app

import (
	"os"

	"leavetrack/internal/auth"
	"leavetrack/internal/department"
	"leavetrack/internal/leave"
	"leavetrack/internal/messaging/kafka"
	"leavetrack/internal/shared/connection"
	"leavetrack/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, migrates the schema and registers
// every module on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}
	zap.L().Info("schema migrated")

	return registerModules(router, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&user.User{},
		&leave.Leave{},
		&auth.RefreshToken{},
	); err != nil {
		return err
	}
	return kafka.Migrate(db)
}
