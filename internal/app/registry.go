package app

import (
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"metaedge-portal/internal/access"
	"metaedge-portal/internal/auth"
	"metaedge-portal/internal/employee"
	"metaedge-portal/internal/leave"
	"metaedge-portal/internal/messaging/kafka"
	"metaedge-portal/internal/middleware"
	"metaedge-portal/internal/note"
	"metaedge-portal/internal/report"
	"metaedge-portal/internal/shared/counter"
	"metaedge-portal/internal/storage"
	"metaedge-portal/internal/task"
	"metaedge-portal/internal/team"
	"metaedge-portal/internal/timeclock"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	timeclockRepo := timeclock.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	noteRepo := note.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access control ---
	enforcer, err := access.NewEnforcer()
	if err != nil {
		return err
	}

	// --- External collaborators ---
	storageClient := storage.NewClient(os.Getenv("STORAGE_BASE_URL"))

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	authService := auth.NewService(employeeRepo)
	teamService := team.NewService(db, teamRepo)
	taskService := task.NewService(db, taskRepo, counterRepo)
	timeclockService := timeclock.NewService(db, timeclockRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	noteService := note.NewService(db, noteRepo)
	reportService := report.NewService(db, reportRepo, storageClient, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	teamHandler := team.NewHandler(teamService)
	taskHandler := task.NewHandler(taskService)
	timeclockHandler := timeclock.NewHandler(timeclockService)
	leaveHandler := leave.NewHandler(leaveService)
	noteHandler := note.NewHandler(noteService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		team.RegisterRoutes(api, teamHandler, enforcer)
		task.RegisterRoutes(api, taskHandler, enforcer)
		timeclock.RegisterRoutes(api, timeclockHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer)
		note.RegisterRoutes(api, noteHandler, enforcer)
		report.RegisterRoutes(api, reportHandler, enforcer)
	}

	return nil
}
