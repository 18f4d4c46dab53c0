package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/config"
	"cyberkids_backend/internal/controller"
	"cyberkids_backend/internal/repository"
	"cyberkids_backend/internal/service"
	"cyberkids_backend/pkg/database"
	"cyberkids_backend/pkg/logger"
	"cyberkids_backend/pkg/monitoring"
	"cyberkids_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Engine  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Catalog *catalog.Catalog

	tracerProvider *sdktrace.TracerProvider

	userRepo     *repository.UserRepository
	progressRepo *repository.ProgressRepository
	feedbackRepo *repository.FeedbackRepository

	authService        *service.AuthService
	progressionService *service.ProgressionService
	skillService       *service.SkillService
	leaderboardService *service.LeaderboardService
	dashboardService   *service.DashboardService
	feedbackService    *service.FeedbackService
	storageService     *service.StorageService

	authController        *controller.AuthController
	profileController     *controller.ProfileController
	learningController    *controller.LearningController
	leaderboardController *controller.LeaderboardController
	dashboardController   *controller.DashboardController
	feedbackController    *controller.FeedbackController
	contentController     *controller.ContentController
	healthController      *controller.HealthController
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The board falls back to recomputing per request without redis.
		logger.Log.Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("paths", len(cat.Paths)),
	)

	monitoring.Init()

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Catalog: cat,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("cyberkids-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("tracing init failed", zap.Error(err))
		} else {
			app.tracerProvider = tp
		}
	}

	app.initRepositories()
	app.initServices()
	app.initControllers()
	app.setupRouter()

	return app, nil
}

func (a *App) initRepositories() {
	a.userRepo = repository.NewUserRepository(a.DB)
	a.progressRepo = repository.NewProgressRepository(a.DB)
	a.feedbackRepo = repository.NewFeedbackRepository(a.DB)
}

func (a *App) initServices() {
	a.authService = service.NewAuthService(a.userRepo, a.progressRepo, a.Config)
	a.progressionService = service.NewProgressionService(a.progressRepo, a.userRepo, a.Catalog)
	a.skillService = service.NewSkillService(time.Now().UnixNano())
	a.leaderboardService = service.NewLeaderboardService(a.Catalog, a.Redis)
	a.dashboardService = service.NewDashboardService(a.userRepo, a.progressRepo, a.Catalog)
	a.feedbackService = service.NewFeedbackService(a.feedbackRepo)
	a.storageService = service.NewStorageService(a.Config)
}

func (a *App) initControllers() {
	a.authController = controller.NewAuthController(a.authService)
	a.profileController = controller.NewProfileController(a.authService, a.progressionService)
	a.learningController = controller.NewLearningController(a.authService, a.progressionService, a.skillService, a.Catalog)
	a.leaderboardController = controller.NewLeaderboardController(a.authService, a.progressionService, a.leaderboardService)
	a.dashboardController = controller.NewDashboardController(a.authService, a.dashboardService)
	a.feedbackController = controller.NewFeedbackController(a.feedbackService)
	a.contentController = controller.NewContentController(a.storageService)
	a.healthController = controller.NewHealthController(a.DB)
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Engine,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("redis close failed", zap.Error(err))
		}
	}

	return srv.Shutdown(ctx)
}
