package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_center_backend/internal/config"
	"course_center_backend/internal/controller"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/service"
	"course_center_backend/pkg/configwatcher"
	"course_center_backend/pkg/database"
	"course_center_backend/pkg/logger"
	"course_center_backend/pkg/monitoring"
	"course_center_backend/pkg/security"
	"course_center_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	session        *repository.SessionRepository
	course         *repository.CourseRepository
	lesson         *repository.LessonRepository
	question       *repository.QuestionRepository
	lessonQuestion *repository.LessonQuestionRepository
	enrollment     *repository.EnrollmentRepository
	score          *repository.ScoreRepository
	submission     *repository.SubmissionRepository
	popularity     *repository.PopularityRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	user       *service.UserService
	course     *service.CourseService
	lesson     *service.LessonService
	question   *service.QuestionService
	publishing *service.PublishingService
	enrollment *service.EnrollmentService
	grading    *service.GradingService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	course   *controller.CourseController
	lesson   *controller.LessonController
	question *controller.QuestionController
	enroll   *controller.EnrollController
	record   *controller.RecordController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		session:        repository.NewSessionRepository(rdb),
		course:         repository.NewCourseRepository(db),
		lesson:         repository.NewLessonRepository(db),
		question:       repository.NewQuestionRepository(db),
		lessonQuestion: repository.NewLessonQuestionRepository(db),
		enrollment:     repository.NewEnrollmentRepository(db),
		score:          repository.NewScoreRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		popularity:     repository.NewPopularityRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.session, cfg)
	s.user = service.NewUserService(repos.user, s.auth, s.storage)
	s.course = service.NewCourseService(db, repos.course, repos.lesson, repos.enrollment, repos.score, repos.user, repos.popularity)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, repos.enrollment, repos.score, repos.user)
	s.question = service.NewQuestionService(repos.question, repos.lessonQuestion, repos.lesson)
	s.publishing = service.NewPublishingService(db, repos.lesson, repos.course, repos.question, repos.lessonQuestion)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.lesson, repos.user, repos.popularity)
	s.grading = service.NewGradingService(repos.lesson, repos.course, repos.enrollment, repos.lessonQuestion, repos.score, repos.submission)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		course:   controller.NewCourseController(s.course, s.enrollment),
		lesson:   controller.NewLessonController(s.lesson, s.publishing),
		question: controller.NewQuestionController(s.question),
		enroll:   controller.NewEnrollController(s.enrollment, s.lesson),
		record:   controller.NewRecordController(s.grading),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, db)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("course-center", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新，当前仅会话 TTL 支持运行时调整
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Config.Session = newCfg.Session
		logger.Log.Info("Config reloaded", zap.Duration("session_ttl", newCfg.Session.TTL))
	})
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
