package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bootcamp-backend/internal/config"
	infraCache "bootcamp-backend/internal/infrastructure/cache"
	"bootcamp-backend/internal/infrastructure/database"
	"bootcamp-backend/internal/infrastructure/email"
	"bootcamp-backend/internal/infrastructure/geocoder"
	"bootcamp-backend/internal/infrastructure/storage"
	"bootcamp-backend/internal/ownership"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/pkg/token"

	bootcampHandler "bootcamp-backend/internal/domains/bootcamp/handler"
	bootcampRepo "bootcamp-backend/internal/domains/bootcamp/repository"
	bootcampService "bootcamp-backend/internal/domains/bootcamp/service"
	courseHandler "bootcamp-backend/internal/domains/course/handler"
	courseRepo "bootcamp-backend/internal/domains/course/repository"
	courseService "bootcamp-backend/internal/domains/course/service"
	reviewHandler "bootcamp-backend/internal/domains/review/handler"
	reviewRepo "bootcamp-backend/internal/domains/review/repository"
	reviewService "bootcamp-backend/internal/domains/review/service"
	userHandler "bootcamp-backend/internal/domains/user/handler"
	userRepo "bootcamp-backend/internal/domains/user/repository"
	userService "bootcamp-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	DB       *database.PostgresDB
	Redis    *infraCache.RedisClient // nil when Redis is unreachable
	Files    storage.FileStore       // nil when MinIO is unreachable
	Geocoder geocoder.Geocoder       // nil without an API key
	Mailer   email.Sender

	Tokens *token.Manager
	Resets *token.ResetIssuer
	Guard  *ownership.Guard

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     userRepo.Repository
	BootcampRepo bootcampRepo.Repository
	CourseRepo   courseRepo.Repository
	ReviewRepo   reviewRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     userService.Service
	BootcampService bootcampService.Service
	CourseService   courseService.Service
	ReviewService   reviewService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthHandler     *userHandler.AuthHandler
	UserHandler     *userHandler.UserHandler
	BootcampHandler *bootcampHandler.BootcampHandler
	CourseHandler   *courseHandler.CourseHandler
	ReviewHandler   *reviewHandler.ReviewHandler

	Authenticator *middleware.Authenticator
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the dependency graph bottom-up:
// config, infrastructure, repositories, services, handlers
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIG
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE EXTERNAL SERVICES
	// ========================================
	c.initExternal()

	// ========================================
	// STEP 4: SECURITY PRIMITIVES
	// ========================================
	c.Tokens = token.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
	c.Resets = token.NewResetIssuer(cfg.ResetToken.Expire)

	c.Guard = ownership.NewGuard(auth.ParseRoles(cfg.Ownership.Elevated)...)
	if len(cfg.Ownership.ElevatedDelete) > 0 {
		c.Guard = c.Guard.WithAction(ownership.ActionDelete, auth.ParseRoles(cfg.Ownership.ElevatedDelete)...)
	}

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.App.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info().Msg("[DATABASE] Migrations applied")
	}

	c.DB = db
	return nil
}

// initExternal connects the optional collaborators. A failure here
// degrades the matching feature instead of stopping the process.
func (c *Container) initExternal() {
	cfg := c.Config

	// Redis backs the rate limiter only
	rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Connection failed, rate limiting disabled")
		_ = rc.Close()
	} else {
		c.Redis = rc
	}
	cancel()

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	files, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("[MINIO] Storage unavailable, photo uploads disabled")
	} else {
		c.Files = files
	}

	if cfg.Geocoder.APIKey != "" {
		c.Geocoder = geocoder.NewMapQuest(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, cfg.Geocoder.Timeout)
	} else {
		log.Warn().Msg("[GEOCODER] GEOCODER_API_KEY not set, bootcamps will not be geocoded")
	}

	c.Mailer = email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.BootcampRepo = bootcampRepo.NewPostgresRepository(pool)
	c.CourseRepo = courseRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.UserService = userService.NewService(c.UserRepo, c.Tokens, c.Resets, c.Mailer, userService.Config{
		ResetURLBase: cfg.App.ResetURLBase,
	})

	c.BootcampService = bootcampService.NewService(
		c.BootcampRepo,
		c.Guard,
		c.Geocoder,
		c.Files,
		cfg.Upload.MaxBytes,
	)

	// Courses and reviews look their bootcamp up through the bootcamp repository
	c.CourseService = courseService.NewService(c.CourseRepo, c.BootcampRepo, c.Guard)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BootcampRepo, c.Guard)
}

func (c *Container) initHandlers() {
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService, userHandler.CookieConfig{
		Expire: c.Config.JWT.CookieExpire,
		Secure: c.Config.App.IsProduction(),
	})
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BootcampHandler = bootcampHandler.NewBootcampHandler(c.BootcampService, c.Config.Upload.MaxBytes)
	c.CourseHandler = courseHandler.NewCourseHandler(c.CourseService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	c.Authenticator = middleware.NewAuthenticator(c.Tokens, c.UserService)
}

// RateCounter returns the limiter store, or nil when Redis is down
func (c *Container) RateCounter() middleware.RateCounter {
	if c.Redis == nil {
		return nil
	}
	return c.Redis
}

// Cleanup releases pooled connections on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] Failed to close client")
		}
	}
}
