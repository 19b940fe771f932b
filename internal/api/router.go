package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vrevia/vrevia-back/docs"
	"github.com/vrevia/vrevia-back/internal/auth"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/models"
	"github.com/vrevia/vrevia-back/internal/tts"
)

// @title           Vrevia API
// @version         1.0
// @description     Tuition management and e-learning API for the Vrevia English school.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, synth tts.Synthesizer) *gin.Engine {
	auth.InitGoogle(cfg)

	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", auth.RegisterHandler())
	r.POST("/auth/login", auth.LoginHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))
	r.GET("/auth/google/login", auth.GoogleLoginHandler())
	r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))

	authed := r.Group("/")
	authed.Use(auth.AuthMiddleware(cfg))
	authed.GET("/me", auth.MeHandler())

	// Admin surface
	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(cfg), auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("/students", CreateStudent)
		admin.GET("/students", ListStudents)
		admin.GET("/students/:id", GetStudent)
		admin.PATCH("/students/:id", UpdateStudent)
		admin.PATCH("/students/:id/active", SetStudentActive)
		admin.POST("/students/:id/advance", AdvanceStudent)
		admin.GET("/students/:id/completions", GetStudentCompletions)

		admin.POST("/groups", CreateGroup)
		admin.GET("/groups", ListGroups)
		admin.GET("/groups/:id", GetGroup)
		admin.PATCH("/groups/:id", UpdateGroup)
		admin.DELETE("/groups/:id", DeleteGroup)
		admin.POST("/groups/:id/advance", AdvanceGroup)
		admin.POST("/groups/:id/students/:studentId", AssignStudentToGroup)

		admin.POST("/payments", CreatePayment)
		admin.GET("/payments", ListPayments)
		admin.PATCH("/payments/:id", UpdatePayment)

		admin.POST("/attendance", CreateAttendance)
		admin.GET("/attendance", ListAttendance)
		admin.POST("/grades", CreateGrade)
		admin.GET("/grades", ListGrades)
		admin.POST("/grades/:id/override", OverrideGrade)
		admin.GET("/grades/:id/revisions", ListGradeRevisions)

		admin.POST("/certificates", IssueCertificate)
		admin.GET("/certificates", ListCertificates)
		admin.DELETE("/certificates/:id", DeleteCertificate)
		admin.GET("/certificates/:id/pdf", DownloadCertificate(cfg))

		admin.POST("/lessons", CreateLesson)
		admin.GET("/lessons", ListLessons)
		admin.PATCH("/lessons/:id", UpdateLesson)
		admin.POST("/lessons/:id/sections", CreateLessonSection)
		admin.POST("/lessons/:id/sections/:sectionId/audio", GenerateSectionAudio(cfg, synth))
		admin.POST("/lessons/:id/exercises", CreateExercise)

		admin.POST("/subscriptions", CreateSubscription)
		admin.GET("/subscriptions", ListSubscriptions)
		admin.PATCH("/subscriptions/:id", UpdateSubscriptionStatus)

		admin.GET("/class-requests", AdminListClassRequests)
		admin.PATCH("/class-requests/:id", SetClassRequestStatus)

		admin.POST("/materials", UploadMaterial(cfg))
		admin.GET("/materials", ListMaterials)

		admin.POST("/assignments", CreateAssignment)
		admin.GET("/assignments", ListAssignments)
		admin.GET("/assignments/:id", GetAssignment)
		admin.POST("/submissions/:id/grade", GradeSubmission)

		admin.GET("/export/students", ExportStudents)
		admin.GET("/export/payments", ExportPayments)
	}

	// Student portal
	portal := r.Group("/portal")
	portal.Use(auth.AuthMiddleware(cfg), auth.RequireRole(models.RoleStudent))
	{
		portal.GET("/progress", GetProgress)
		portal.GET("/access", CheckAccess)
		portal.GET("/lessons", PortalListLessons)
		portal.GET("/lessons/:number", PortalGetLesson)
		portal.POST("/exercises/:id/attempts", SubmitAttempt)
		portal.GET("/attempts", ListAttempts)
		portal.GET("/subscription", ValidateSubscription)
		portal.POST("/class-requests", CreateClassRequest)
		portal.GET("/class-requests", ListClassRequests)
		portal.POST("/class-requests/:id/cancel", CancelClassRequest)
		portal.GET("/certificates", PortalListCertificates)
		portal.GET("/certificates/:id/pdf", PortalDownloadCertificate(cfg))
		portal.POST("/assignments/:id/submissions", SubmitAssignment)
		portal.GET("/materials", ListMaterials)
	}

	return r
}
