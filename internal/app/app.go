package app

import (
	"context"
	"log"
	"net/http"
	"onboarding_backend/internal/config"
	"onboarding_backend/internal/controller"
	"onboarding_backend/internal/repository"
	"onboarding_backend/internal/service"
	"onboarding_backend/internal/util"
	"onboarding_backend/pkg/configwatcher"
	"onboarding_backend/pkg/database"
	"onboarding_backend/pkg/logger"
	"onboarding_backend/pkg/messaging"
	"onboarding_backend/pkg/monitoring"
	"onboarding_backend/pkg/security"
	"onboarding_backend/pkg/tracing"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Events          messaging.Publisher
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	applicant     *repository.ApplicantRepository
	videoProgress *repository.VideoProgressRepository
	session       *repository.SessionRepository
}

type services struct {
	storage    *service.StorageService
	video      *service.VideoService
	quiz       *service.QuizEngine
	onboarding *service.OnboardingService
}

type controllers struct {
	onboarding *controller.OnboardingController
	video      *controller.VideoController
	quiz       *controller.QuizController
	commitment *controller.CommitmentController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		applicant:     repository.NewApplicantRepository(db),
		videoProgress: repository.NewVideoProgressRepository(db),
		session:       repository.NewSessionRepository(rdb, cfg.Onboarding.SessionTTL()),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	bank, err := service.NewDefaultQuizBank()
	if err != nil {
		logger.Log.Fatal("Failed to load quiz bank", zap.Error(err))
	}

	s := &services{}
	s.storage = service.NewStorageService(&cfg.Storage)
	s.video = service.NewVideoService(repos.videoProgress, service.NewVideoCatalog(cfg.Onboarding.Videos), a.Events)
	s.quiz = service.NewQuizEngine(bank)
	s.onboarding = service.NewOnboardingService(
		repos.user,
		repos.applicant,
		repos.session,
		s.video,
		s.quiz,
		s.storage,
		a.Events,
		cfg.Onboarding.WaitingPath,
	)
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		onboarding: controller.NewOnboardingController(s.onboarding),
		video:      controller.NewVideoController(s.video, s.onboarding),
		quiz:       controller.NewQuizController(s.onboarding),
		commitment: controller.NewCommitmentController(s.onboarding),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID(util.ContextRequestIDKey))
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需 -migrate 显式开启
	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb
	app.Events = messaging.NewPublisher(cfg.Messaging)

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("onboarding-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 配置热更新
	go func() {
		configFile := filepath.Join(a.ConfigDir, "config.yaml")
		err := configwatcher.WatchConfig(ctx, configFile, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			logger.Log.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
