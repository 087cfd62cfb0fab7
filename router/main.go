package router

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/handlers"
	admin_handlers "github.com/campushub/portal-api/handlers/admin"
	auth_handlers "github.com/campushub/portal-api/handlers/auth"
	faculty_handlers "github.com/campushub/portal-api/handlers/faculty"
	repository_handlers "github.com/campushub/portal-api/handlers/repository"
	resource_handlers "github.com/campushub/portal-api/handlers/resource"
	student_handlers "github.com/campushub/portal-api/handlers/student"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/cache"
	"github.com/campushub/portal-api/utils/middleware"
)

// Deps carries the stores and services the route tree wires together
type Deps struct {
	Portal     *database.GORMStore
	Repo       *database.RepoStore
	JWTManager *auth.JWTManager
	Cache      *cache.RedisCache
	Intake     *services.FileIntakeService
	Ingest     *services.IngestService
	RAG        *services.RAGService
	Audit      *services.AuditService
	Email      *services.EmailService
}

// SetupRoutes registers every route group with its middleware chain
func SetupRoutes(app *fiber.App, deps Deps) {
	db := deps.Portal.GetDB()

	var bruteForceProtection *middleware.BruteForceProtection
	if deps.Cache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(deps.Cache)
	}

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, deps.JWTManager, bruteForceProtection, deps.Audit, deps.Email)
	healthHandler := handlers.NewHealthHandler(deps.Portal, deps.Repo)
	studentHandler := student_handlers.NewStudentHandler(db, deps.Intake, deps.Audit)
	facultyHandler := faculty_handlers.NewFacultyHandler(db, deps.Intake, deps.Audit)
	adminHandler := admin_handlers.NewAdminHandler(db, deps.Intake, deps.Audit, deps.Email)
	resourceHandler := resource_handlers.NewResourceHandler(db, deps.Cache)
	repoHandler := repository_handlers.NewRepositoryHandler(deps.Repo, deps.Ingest, deps.RAG)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", healthHandler.Check)

	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Student routes
	student := api.Group("/student", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleStudent))
	student.Get("/dashboard", studentHandler.Dashboard)
	student.Get("/pins", studentHandler.ListPins)
	student.Post("/pins", studentHandler.CreatePin)
	student.Delete("/pins/:id", studentHandler.DeletePin)
	student.Post("/files", studentHandler.Upload)
	student.Get("/files", studentHandler.MyFiles)

	// File download is available to any authenticated role
	api.Get("/files/:id/download", authMiddleware.Required(), studentHandler.Download)

	// Faculty routes
	faculty := api.Group("/faculty", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleFaculty))
	faculty.Get("/dashboard", facultyHandler.Dashboard)
	faculty.Post("/files", facultyHandler.Upload)
	faculty.Get("/courses/:id/students", facultyHandler.CourseStudents)
	faculty.Put("/courses/:id/marks", facultyHandler.UpdateMarks)
	faculty.Post("/courses/:id/attendance", facultyHandler.RecordAttendance)
	faculty.Get("/courses/:id/assignments", facultyHandler.ListAssignments)
	faculty.Post("/courses/:id/assignments", facultyHandler.CreateAssignment)
	faculty.Delete("/courses/:id/assignments/:assignmentId", facultyHandler.DeleteAssignment)
	faculty.Get("/notifications", facultyHandler.ListNotifications)
	faculty.Post("/notifications", facultyHandler.CreateNotification)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleAdmin))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/students", adminHandler.ListStudents)
	admin.Get("/faculty", adminHandler.ListFaculty)
	admin.Post("/faculty", adminHandler.CreateFaculty)
	admin.Get("/accounts/pending", adminHandler.PendingAccounts)
	admin.Post("/accounts/:id/approve", adminHandler.ApproveAccount)
	admin.Post("/accounts/:id/suspend", adminHandler.SuspendAccount)
	admin.Get("/courses", adminHandler.ListCourses)
	admin.Post("/courses", adminHandler.CreateCourse)
	admin.Put("/courses/:id", adminHandler.UpdateCourse)
	admin.Post("/courses/:id/enroll", adminHandler.EnrollStudent)
	admin.Get("/files/pending", adminHandler.PendingFiles)
	admin.Post("/files/:id/approve", adminHandler.ApproveFile)
	admin.Post("/files/:id/deny", adminHandler.DenyFile)
	admin.Post("/announcements", adminHandler.CreateAnnouncement)

	// Audit feed is readable by faculty and admins
	api.Get("/audit", authMiddleware.Required(),
		authMiddleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
		adminHandler.AuditFeed)

	// Resource browsing for any authenticated role
	resources := api.Group("/resources", authMiddleware.Required())
	resources.Get("/search", resourceHandler.Search)
	resources.Get("/filters", resourceHandler.FilterOptions)

	// Smart repository routes
	repo := api.Group("/repository", authMiddleware.Required())
	repo.Post("/upload", repoHandler.Upload)
	repo.Post("/upload-batch", repoHandler.UploadBatch)
	repo.Post("/classify-only", repoHandler.ClassifyOnly)
	repo.Get("/files/list", repoHandler.ListFiles)
	repo.Get("/search/topic", repoHandler.SearchTopic)

	repoChat := repo.Group("/chat")
	repoChat.Post("/document/:id", repoHandler.ChatDocument)
	repoChat.Post("/pdf/:id", repoHandler.ChatPDF) // legacy alias
	repoChat.Post("/subject/:code", repoHandler.ChatSubject)
	repoChat.Post("/global", repoHandler.ChatGlobal)

	// Repository review queue (faculty and admin only)
	review := repo.Group("/review", authMiddleware.RequireRole(model.RoleFaculty, model.RoleAdmin))
	review.Get("/pending", repoHandler.ReviewPending)
	review.Post("/:id/approve", repoHandler.ReviewApprove)
	review.Post("/:id/reject", repoHandler.ReviewReject)
}
