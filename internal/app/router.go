package app

import (
	"time"

	"akaraka_backend/docs"
	"akaraka_backend/internal/config"
	"akaraka_backend/internal/middleware"
	"akaraka_backend/internal/model"
	"akaraka_backend/pkg/monitoring"
	"akaraka_backend/pkg/security"
	"akaraka_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	api := router.Group("/api")

	// Public, personalization optional.
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:slug", c.course.Detail)
		public.GET("/exercises", c.exercise.List)

		public.GET("/gamification/leaderboard", c.gamification.Leaderboard)

		public.GET("/community/posts", c.community.ListPosts)
		public.GET("/community/posts/:slug", c.community.GetPost)
		public.GET("/community/testimonies", c.community.ListTestimonies)

		public.GET("/payments/plans", c.payment.Plans)
		public.GET("/certificates/verify/:code", c.certificate.Verify)
	}

	// Signed-in learners.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/auth/me", c.auth.Me)
		authed.PUT("/auth/password", c.auth.ChangePassword)

		authed.GET("/user/dashboard", c.user.Dashboard)
		authed.PUT("/user/profile", c.user.UpdateProfile)

		authed.GET("/courses/mine", c.course.MyCourses)
		authed.POST("/courses/:slug/enroll", c.course.Enroll)
		authed.GET("/courses/:slug/lessons/:lessonSlug", c.course.LessonDetail)
		authed.POST("/lessons/:id/complete", c.course.CompleteLesson)
		authed.GET("/lessons/:id/progress", c.course.LessonProgress)
		authed.GET("/lessons/:id/exercises", c.exercise.ForLesson)

		authed.GET("/exercises/history", c.exercise.History)
		authed.GET("/exercises/:id", c.exercise.Detail)
		authed.POST("/exercises/:id/submit/choice", c.exercise.SubmitChoice)
		authed.POST("/exercises/:id/submit/matching", c.exercise.SubmitMatching)
		authed.POST("/exercises/:id/submit/typing", c.exercise.SubmitTyping)
		authed.POST("/exercises/:id/submit/listening", c.exercise.SubmitListening)

		authed.GET("/gamification/tier", c.gamification.TierStatus)
		authed.GET("/gamification/badges", c.gamification.Badges)
		authed.GET("/gamification/achievements", c.gamification.Achievements)

		authed.POST("/community/posts", c.community.CreatePost)
		authed.DELETE("/community/posts/:id", c.community.DeletePost)
		authed.POST("/community/posts/:id/like", c.community.ToggleLike)
		authed.POST("/community/posts/:id/comments", c.community.CreateComment)
		authed.POST("/community/testimonies", c.community.CreateTestimony)
		authed.POST("/community/reports", c.community.CreateReport)

		authed.POST("/payments/checkout", c.payment.Checkout)
		authed.GET("/payments/subscription", c.payment.Status)
		authed.DELETE("/payments/subscription", c.payment.Cancel)
		authed.GET("/payments/history", c.payment.History)

		authed.POST("/courses/:slug/certificate", c.certificate.Issue)
		authed.GET("/certificates", c.certificate.Mine)
		authed.GET("/certificates/:id/download", c.certificate.Download)
	}

	// Content management: admins and teachers.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin, model.Teacher))
	{
		admin.POST("/courses", c.admin.CreateCourse)
		admin.PUT("/courses/:id", c.admin.UpdateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)

		admin.POST("/lessons", c.admin.CreateLesson)
		admin.PUT("/lessons/:id", c.admin.UpdateLesson)
		admin.DELETE("/lessons/:id", c.admin.DeleteLesson)
		admin.POST("/lessons/:id/audio", c.admin.GenerateLessonAudio)
		admin.POST("/lessons/:id/translate", c.admin.TranslateLesson)
		admin.POST("/vocabulary/:id/audio", c.admin.GenerateVocabularyAudio)

		admin.POST("/exercises", c.admin.CreateExercise)
		admin.PUT("/exercises/:id", c.admin.UpdateExercise)
		admin.DELETE("/exercises/:id", c.admin.DeleteExercise)
		admin.POST("/exercises/attach", c.admin.AttachExercise)

		admin.GET("/stats", c.admin.Stats)
		admin.GET("/reports", c.admin.PendingReports)
	}
}
