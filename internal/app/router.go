package app

import (
	"onboarding_backend/docs"
	"onboarding_backend/internal/config"
	"onboarding_backend/internal/middleware"
	"onboarding_backend/internal/model"
	"onboarding_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 入职流程，需要申请人身份
	onboarding := router.Group("/api/onboarding")
	onboarding.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.RoleMiddleware(model.RoleApplicant),
		middleware.ApplicantMiddleware(repos.applicant),
	)
	registerOnboardingRoutes(onboarding, c)
}

func registerOnboardingRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/session", c.onboarding.Start)
	group.GET("/state", c.onboarding.State)
	group.POST("/proceed-to-quiz", c.onboarding.ProceedToQuiz)
	group.POST("/back", c.onboarding.Back)
	group.POST("/steps/:step", c.onboarding.JumpToStep)

	videos := group.Group("/videos")
	{
		videos.GET("", c.video.List)
		videos.GET("/:number", c.video.Get)
		videos.POST("/:number/progress", c.video.ReportProgress)
		videos.POST("/:number/playback-error", c.video.ReportPlaybackError)
	}

	quiz := group.Group("/quiz")
	{
		quiz.GET("", c.quiz.Get)
		quiz.PUT("/answers/:index", c.quiz.SelectAnswer)
		quiz.POST("/next", c.quiz.Next)
		quiz.POST("/back", c.quiz.Back)
		quiz.POST("/submit", c.quiz.Submit)
		quiz.POST("/retake", c.quiz.Retake)
		quiz.POST("/continue", c.quiz.Continue)
	}

	commitment := group.Group("/commitment")
	{
		commitment.GET("", c.commitment.Get)
		commitment.PUT("", c.commitment.Update)
		commitment.POST("/strokes", c.commitment.AddStroke)
		commitment.PUT("/signature", c.commitment.UploadSignature)
		commitment.DELETE("/signature", c.commitment.ClearSignature)
		commitment.POST("/complete", c.commitment.Complete)
	}
}
