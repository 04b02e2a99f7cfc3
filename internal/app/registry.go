package app

import (
	"database/sql"

	"github.com/nidhidattani13/ems/internal/attendance"
	"github.com/nidhidattani13/ems/internal/auth"
	"github.com/nidhidattani13/ems/internal/department"
	"github.com/nidhidattani13/ems/internal/designation"
	"github.com/nidhidattani13/ems/internal/document"
	"github.com/nidhidattani13/ems/internal/employee"
	"github.com/nidhidattani13/ems/internal/face"
	"github.com/nidhidattani13/ems/internal/leave"
	"github.com/nidhidattani13/ems/internal/leavepolicy"
	"github.com/nidhidattani13/ems/internal/leavetype"
	"github.com/nidhidattani13/ems/internal/messaging/kafka"
	"github.com/nidhidattani13/ems/internal/middleware"
	"github.com/nidhidattani13/ems/internal/rbac"
	"github.com/nidhidattani13/ems/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	faceRepo := face.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	clk := clock.New()
	ledger := leave.NewLedger(leaveRepo, leavePolicyRepo)

	attendanceService := attendance.NewService(db, attendanceRepo, ledger, clk)
	departmentService := department.NewService(db, departmentRepo)
	designationService := designation.NewService(db, designationRepo, rdb)
	documentService := document.NewService(db, documentRepo)
	employeeService := employee.NewService(db, employeeRepo, outboxRepo)
	faceService := face.NewService(db, faceRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, ledger, outboxRepo, clk)
	leavePolicyService := leavepolicy.NewService(db, leavePolicyRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	authService := auth.NewService(employeeService, employeeRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	designationHandler := designation.NewHandler(designationService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	faceHandler := face.NewHandler(faceService)
	leaveHandler := leave.NewHandler(leaveService)
	leavePolicyHandler := leavepolicy.NewHandler(leavePolicyService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)

	// --- Routes ---
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		designation.RegisterRoutes(api, designationHandler, enforcer)
		document.RegisterRoutes(api, documentHandler, enforcer)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		face.RegisterRoutes(api, faceHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer)
		leavepolicy.RegisterRoutes(api, leavePolicyHandler, enforcer)
		leavetype.RegisterRoutes(api, leaveTypeHandler, enforcer)
	}

	return nil
}
