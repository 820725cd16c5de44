package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/MuleAlemuB/project1-sub002/internal/application"
	"github.com/MuleAlemuB/project1-sub002/internal/attendance"
	"github.com/MuleAlemuB/project1-sub002/internal/auth"
	"github.com/MuleAlemuB/project1-sub002/internal/config"
	"github.com/MuleAlemuB/project1-sub002/internal/department"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/leave"
	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/requisition"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/connection"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/counter"
	"github.com/MuleAlemuB/project1-sub002/internal/vacancy"
	"github.com/MuleAlemuB/project1-sub002/internal/workexperience"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// models lists every table the API owns, in dependency order.
func models() []any {
	return []any{
		&department.Department{},
		&auth.User{},
		&employee.Employee{},
		&counter.Counter{},
		&kafka.OutboxEvent{},
		&notification.Notification{},
		&leave.LeaveRequest{},
		&requisition.Requisition{},
		&vacancy.Vacancy{},
		&application.Application{},
		&workexperience.WorkExperienceRequest{},
		&attendance.Attendance{},
	}
}

// BuildApp connects the infrastructure described by cfg and mounts every
// module on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L()

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database connection established")

	if cfg.Database.AutoMigrate {
		if err := migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Println("✅ Redis connection established")

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	if _, err := auth.SeedAdmin(
		context.Background(),
		auth.NewRepository(gormDB),
		cfg.Admin.Name,
		cfg.Admin.Email,
		cfg.Admin.Password,
		logger,
	); err != nil {
		cleanup()
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	// 2. Global middleware
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.Server.CORSOrigins),
	)

	// 3. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("✅ Database schema migrated")
	return nil
}

// openDatabase is shared by the background processes, which need the pool
// but neither Redis nor the HTTP stack.
func openDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}
