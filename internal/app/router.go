package app

import (
	"time"

	"cyberkids_backend/internal/middleware"
	"cyberkids_backend/internal/model"
	"cyberkids_backend/pkg/monitoring"
	"cyberkids_backend/pkg/security"
	"cyberkids_backend/pkg/tracing"

	"cyberkids_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupRouter() {
	gin.SetMode(a.Config.Server.Mode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	engine.Use(security.Secure())
	engine.Use(monitoring.MetricsMiddleware())
	if a.Config.Tracing.Enabled {
		engine.Use(tracing.GinMiddleware())
	}
	if a.Config.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Config.RateLimit.WindowMinutes) * time.Minute
		if window <= 0 {
			window = time.Minute
		}
		engine.Use(security.RateLimiter(a.Config.RateLimit.MaxRequests, window))
	}

	docs.SwaggerInfo.BasePath = "/api"
	engine.GET("/health", a.healthController.Check)
	engine.GET("/metrics", monitoring.PrometheusHandler())
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	if a.Config.Storage.Type != "minio" {
		engine.Static("/uploads", a.Config.Storage.LocalPath)
	}

	api := engine.Group("/api")
	{
		api.POST("/register", a.authController.Register)
		api.POST("/login", a.authController.Login)
		api.GET("/health", a.healthController.Check)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(a.Config))
		authed.Use(middleware.ActivityMiddleware(a.userRepo))
		{
			authed.GET("/profile", a.profileController.GetProfile)
			authed.POST("/profile/age-group", a.profileController.SelectAgeGroup)
			authed.PUT("/profile/avatar", a.profileController.SaveAvatar)
			authed.POST("/profile/premium", a.profileController.UpgradeToPremium)

			authed.GET("/leaderboard", a.leaderboardController.GetLeaderboard)
			authed.GET("/mission", a.learningController.GetWeeklyMission)
			authed.POST("/feedback", a.feedbackController.Submit)

			learning := authed.Group("/learning")
			learning.Use(middleware.RoleMiddleware(model.Student))
			{
				learning.GET("/path", a.learningController.GetLearningPath)
				learning.GET("/lessons/:lessonId/quiz", a.learningController.GetQuiz)
				learning.GET("/lessons/:lessonId/game", a.learningController.GetGame)
				learning.POST("/lessons/:lessonId/complete", a.learningController.CompleteLesson)
				learning.PUT("/lessons/:lessonId/game-state", a.learningController.SaveGameState)
			}

			parent := authed.Group("/parent")
			parent.Use(middleware.RoleMiddleware(model.Parent))
			{
				parent.POST("/link", a.dashboardController.LinkStudent)
				parent.GET("/overview", a.dashboardController.ParentOverview)
			}

			school := authed.Group("/school")
			school.Use(middleware.RoleMiddleware(model.School))
			{
				school.GET("/overview", a.dashboardController.SchoolOverview)
			}

			content := authed.Group("/content")
			content.Use(middleware.RoleMiddleware(model.School, model.Admin))
			{
				content.POST("/videos", a.contentController.UploadVideo)
			}

			admin := authed.Group("/admin")
			admin.Use(middleware.RoleMiddleware(model.Admin))
			{
				admin.GET("/feedback", a.feedbackController.Recent)
			}
		}
	}

	a.Engine = engine
}
