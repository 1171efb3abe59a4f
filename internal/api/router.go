package api

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/egspgoi/projectverse/docs"
	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/config"
	"github.com/egspgoi/projectverse/internal/cron"
	"github.com/egspgoi/projectverse/internal/models"
	"github.com/egspgoi/projectverse/internal/session"
	"github.com/egspgoi/projectverse/internal/workflow"
)

// @title           ProjectVerse Portal
// @version         1.0
// @description     Role-based portal gateway for the student project allocation service.
// @BasePath        /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name pv_session
func SetupRouter(cfg *config.Config, cli *client.Client, mon *cron.Monitor) *gin.Engine {
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	h := &Handlers{
		client:   cli,
		sessions: sessions,
		flow:     workflow.NewController(cli),
		monitor:  mon,
	}

	registerDepartmentRule()

	r := gin.Default()

	// Public routes
	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", h.Login)
	r.POST("/auth/force-login", h.ForceLogin)
	r.POST("/auth/logout", h.Logout)

	// Protected
	authed := r.Group("", session.Middleware(sessions))
	authed.GET("/me", h.Me)
	authed.DELETE("/files/token/:token", h.InvalidateFileToken)

	admin := authed.Group("/admin", session.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/faculties", h.ListFaculties)
		admin.POST("/faculties", h.CreateFaculty)
		admin.PUT("/faculties/:id", h.UpdateFaculty)
		admin.DELETE("/faculties/:id", h.DeleteFaculty)
		admin.GET("/batches", h.ListBatches)
		admin.POST("/batches", h.CreateBatch)
		admin.PUT("/batches/:id", h.UpdateBatch)
		admin.PUT("/batches/:id/students", h.UpdateBatchStudents)
		admin.GET("/problem-statements", h.ListProblemStatements)
		admin.POST("/problem-statements", h.CreateProblemStatement)
		admin.POST("/bulk-upload/:entity", h.BulkUpload)
		admin.GET("/bulk-upload/:entity/template", h.BulkTemplate)
		admin.GET("/reports/allocations", h.AllocationReport)
	}

	faculty := authed.Group("/faculty", session.RequireRole(models.RoleFaculty))
	{
		faculty.GET("/dashboard", h.FacultyDashboard)
		faculty.GET("/problem-statements", h.MyProblemStatements)
		faculty.POST("/problem-statements", h.CreateMyProblemStatement)
		faculty.DELETE("/problem-statements/:id", h.DeleteMyProblemStatement)
		faculty.GET("/batches/:id", h.FacultyBatchDetails)
		faculty.PUT("/batches/:id/students", h.UpdateBatchStudentsAsFaculty)
	}

	batch := authed.Group("/batch", session.RequireRole(models.RoleBatch))
	{
		batch.GET("/dashboard", h.BatchDashboard)
		batch.POST("/students", h.SaveRoster)
		batch.GET("/domains", h.BatchDomains)
		batch.GET("/problem-statements", h.BatchStatements)
		batch.POST("/choose", h.ChooseStatement)
		batch.GET("/report", h.BatchReport)
	}

	return r
}

// registerDepartmentRule teaches gin's validator the fixed department
// enumeration used by roster and account payloads.
func registerDepartmentRule() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return slices.Contains(models.Departments, fl.Field().String())
		})
	}
}
