package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"akaraka_backend/internal/config"
	"akaraka_backend/internal/controller"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/service"
	"akaraka_backend/pkg/configwatcher"
	"akaraka_backend/pkg/database"
	"akaraka_backend/pkg/logger"
	"akaraka_backend/pkg/monitoring"
	"akaraka_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	lesson       *repository.LessonRepository
	progress     *repository.ProgressRepository
	enrollment   *repository.EnrollmentRepository
	exercise     *repository.ExerciseRepository
	response     *repository.ResponseRepository
	tier         *repository.TierRepository
	badge        *repository.BadgeRepository
	achievement  *repository.AchievementRepository
	post         *repository.PostRepository
	comment      *repository.CommentRepository
	testimony    *repository.TestimonyRepository
	report       *repository.ReportRepository
	subscription *repository.SubscriptionRepository
	payment      *repository.PaymentRepository
	certificate  *repository.CertificateRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	course       *service.CourseService
	progress     *service.ProgressService
	exercise     *service.ExerciseService
	gamification *service.GamificationService
	community    *service.CommunityService
	payment      *service.PaymentService
	certificate  *service.CertificateService
	stats        *service.StatsService
	storage      service.StorageProvider
	tts          *service.TTSService
	translation  *service.TranslationService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	exercise     *controller.ExerciseController
	gamification *controller.GamificationController
	community    *controller.CommunityController
	payment      *controller.PaymentController
	certificate  *controller.CertificateController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		lesson:       repository.NewLessonRepository(db),
		progress:     repository.NewProgressRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		exercise:     repository.NewExerciseRepository(db),
		response:     repository.NewResponseRepository(db),
		tier:         repository.NewTierRepository(db),
		badge:        repository.NewBadgeRepository(db),
		achievement:  repository.NewAchievementRepository(db),
		post:         repository.NewPostRepository(db),
		comment:      repository.NewCommentRepository(db),
		testimony:    repository.NewTestimonyRepository(db),
		report:       repository.NewReportRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		payment:      repository.NewPaymentRepository(db),
		certificate:  repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}
	ctx := context.Background()

	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.tts, err = service.NewTTSService(ctx, cfg.Google.TTSEnabled, storage)
	if err != nil {
		return nil, err
	}
	s.translation, err = service.NewTranslationService(ctx, cfg.Google.TranslateEnabled, repos.lesson)
	if err != nil {
		return nil, err
	}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.gamification = service.NewGamificationService(repos.user, repos.tier, repos.badge, repos.achievement, rdb)
	s.progress = service.NewProgressService(repos.progress, repos.enrollment, repos.lesson, repos.course, s.gamification)
	s.course = service.NewCourseService(repos.course, repos.lesson, repos.enrollment, repos.user, s.progress)
	s.exercise = service.NewExerciseService(repos.exercise, repos.response, repos.lesson, s.gamification)
	s.user = service.NewUserService(repos.user, repos.enrollment, repos.progress, repos.lesson,
		repos.response, repos.certificate, s.gamification)
	s.community = service.NewCommunityService(repos.post, repos.comment, repos.testimony, repos.report, rdb)
	s.payment = service.NewPaymentService(repos.subscription, repos.payment, repos.user, cfg)
	s.certificate = service.NewCertificateService(repos.certificate, repos.progress, repos.lesson,
		repos.course, repos.user, storage)
	s.stats = service.NewStatsService(repos.user, repos.course, repos.enrollment, repos.payment)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		course:       controller.NewCourseController(s.course, s.progress, s.auth),
		exercise:     controller.NewExerciseController(s.exercise),
		gamification: controller.NewGamificationController(s.gamification),
		community:    controller.NewCommunityController(s.community),
		payment:      controller.NewPaymentController(s.payment),
		certificate:  controller.NewCertificateController(s.certificate),
		admin:        controller.NewAdminController(s.course, s.exercise, s.community, s.stats, s.tts, s.translation),
		health:       controller.NewHealthController(db, rdb),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("database migration failed", zap.Error(err))
		}
		database.Seed(db)
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The platform degrades without redis (no leaderboard cache, every
		// post view counts); it does not refuse to start.
		logger.Log.Warn("redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("akaraka-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Hot-reload the config file; only fields read per-request pick up the
	// change, middlewares bound at startup keep their original settings.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		newCfg.ForceMigrate = cfg.ForceMigrate
		app.Config = newCfg
		logger.Log.Info("configuration reloaded")
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.services != nil {
		if a.services.tts != nil {
			a.services.tts.Close()
		}
		if a.services.translation != nil {
			a.services.translation.Close()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
