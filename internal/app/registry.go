package app

import (
	"database/sql"
	"net/http"

	"github.com/MuleAlemuB/project1-sub002/internal/admin"
	"github.com/MuleAlemuB/project1-sub002/internal/application"
	"github.com/MuleAlemuB/project1-sub002/internal/attendance"
	"github.com/MuleAlemuB/project1-sub002/internal/auth"
	"github.com/MuleAlemuB/project1-sub002/internal/config"
	"github.com/MuleAlemuB/project1-sub002/internal/department"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/leave"
	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac"
	"github.com/MuleAlemuB/project1-sub002/internal/rbac/infra"
	"github.com/MuleAlemuB/project1-sub002/internal/report"
	"github.com/MuleAlemuB/project1-sub002/internal/requisition"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/counter"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"
	"github.com/MuleAlemuB/project1-sub002/internal/vacancy"
	"github.com/MuleAlemuB/project1-sub002/internal/workexperience"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	store := upload.NewStore(cfg.Upload.Dir)

	// --- Repositories ---
	applicationRepo := application.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reportRepo := report.NewRepository(gormDB)
	requisitionRepo := requisition.NewRepository(gormDB)
	vacancyRepo := vacancy.NewRepository(gormDB)
	workExperienceRepo := workexperience.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicy(), logger)
	if err != nil {
		return err
	}

	// --- Notifications ---
	notificationService := notification.NewService(notificationRepo, notification.Resolvers{
		domain.RefLeave:          leave.NewSourceResolver(leaveRepo),
		domain.RefRequisition:    requisition.NewSourceResolver(requisitionRepo),
		domain.RefApplication:    application.NewSourceResolver(applicationRepo),
		domain.RefWorkExperience: workexperience.NewSourceResolver(workExperienceRepo),
	}, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo, []byte(cfg.JWT.Secret), cfg.JWT.TTL, logger)
	applicationService := application.NewService(db, applicationRepo, vacancyRepo, notificationService, store, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, store, rdb, logger)
	leaveService := leave.NewService(db, leaveRepo, notificationService, store, logger)
	reportService := report.NewService(reportRepo, rdb, logger)
	requisitionService := requisition.NewService(db, requisitionRepo, notificationService, logger)
	vacancyService := vacancy.NewService(db, vacancyRepo, rdb, logger)
	workExperienceService := workexperience.NewService(db, workExperienceRepo, employeeRepo, notificationService, store, logger)

	// --- Handlers ---
	applicationHandler := application.NewHandler(applicationService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	requisitionHandler := requisition.NewHandler(requisitionService, logger)
	vacancyHandler := vacancy.NewHandler(vacancyService, logger)
	workExperienceHandler := workexperience.NewHandler(workExperienceService, logger)

	// --- Routes Registration ---
	router.Static("/"+upload.PublicPrefix, store.Root())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authService)
		rbac.RegisterRoutes(api, rbacHandler, authService)
		department.RegisterRoutes(api, departmentHandler, authService, rbacService)
		employee.RegisterRoutes(api, employeeHandler, authService, rbacService)
		notification.RegisterRoutes(api, notificationHandler, authService, rbacService)
		leave.RegisterRoutes(api, leaveHandler, authService, rbacService, rdb)
		requisition.RegisterRoutes(api, requisitionHandler, authService, rbacService)
		vacancy.RegisterRoutes(api, vacancyHandler, authService, rbacService)
		application.RegisterRoutes(api, applicationHandler, authService, rbacService, rdb)
		workexperience.RegisterRoutes(api, workExperienceHandler, authService, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, authService, rbacService)
		report.RegisterRoutes(api, reportHandler, authService, rbacService)
		admin.RegisterRoutes(api, admin.Handlers{
			Report:      reportHandler,
			Requisition: requisitionHandler,
			Auth:        authHandler,
		}, authService, rbacService)
	}

	return nil
}
