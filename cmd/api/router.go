package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Upload.MaxBytes

	// Forwarding headers count only from these proxies
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Invalid TRUSTED_PROXIES, forwarding headers ignored")
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.SecurityHeaders(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)
	if counter := c.RateCounter(); c.Config.RateLimit.Enabled && counter != nil {
		router.Use(middleware.RateLimit(counter, c.Config.RateLimit.Max, c.Config.RateLimit.Window))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBootcampRoutes(v1, c)
		setupCourseRoutes(v1, c)
		setupReviewRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	protect := c.Authenticator.Protect()

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.AuthHandler.Register)
		authGroup.POST("/login", c.AuthHandler.Login)
		authGroup.GET("/logout", c.AuthHandler.Logout)
		authGroup.GET("/me", protect, c.AuthHandler.Me)
		authGroup.PUT("/updatedetails", protect, c.AuthHandler.UpdateDetails)
		authGroup.PUT("/updatepassword", protect, c.AuthHandler.UpdatePassword)
		authGroup.POST("/forgotpassword", c.AuthHandler.ForgotPassword)
		authGroup.PUT("/resetpassword/:resettoken", c.AuthHandler.ResetPassword)
	}
}

// ========================================
// USER ROUTES (ADMIN)
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(c.Authenticator.Protect(), middleware.Authorize(auth.RoleAdmin))
	{
		users.GET("", c.UserHandler.ListUsers)
		users.POST("", c.UserHandler.CreateUser)
		users.GET("/:id", c.UserHandler.GetUser)
		users.PUT("/:id", c.UserHandler.UpdateUser)
		users.DELETE("/:id", c.UserHandler.DeleteUser)
	}
}

// ========================================
// BOOTCAMP ROUTES
// ========================================
func setupBootcampRoutes(v1 *gin.RouterGroup, c *container.Container) {
	protect := c.Authenticator.Protect()
	publishers := middleware.Authorize(auth.RolePublisher, auth.RoleAdmin)
	reviewers := middleware.Authorize(auth.RoleUser, auth.RoleAdmin)

	bootcamps := v1.Group("/bootcamps")
	{
		bootcamps.GET("", c.BootcampHandler.ListBootcamps)
		bootcamps.POST("", protect, publishers, c.BootcampHandler.CreateBootcamp)
		bootcamps.GET("/radius/:zipcode/:distance", c.BootcampHandler.GetBootcampsInRadius)

		bootcamps.GET("/:id", c.BootcampHandler.GetBootcamp)
		bootcamps.PUT("/:id", protect, publishers, c.BootcampHandler.UpdateBootcamp)
		bootcamps.DELETE("/:id", protect, publishers, c.BootcampHandler.DeleteBootcamp)
		bootcamps.PUT("/:id/photo", protect, publishers, c.BootcampHandler.UploadPhoto)

		// Nested resources
		bootcamps.GET("/:id/courses", c.CourseHandler.ListBootcampCourses)
		bootcamps.POST("/:id/courses", protect, publishers, c.CourseHandler.CreateCourse)
		bootcamps.GET("/:id/reviews", c.ReviewHandler.ListBootcampReviews)
		bootcamps.POST("/:id/reviews", protect, reviewers, c.ReviewHandler.CreateReview)
	}
}

// ========================================
// COURSE ROUTES
// ========================================
func setupCourseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	protect := c.Authenticator.Protect()
	publishers := middleware.Authorize(auth.RolePublisher, auth.RoleAdmin)

	courses := v1.Group("/courses")
	{
		courses.GET("", c.CourseHandler.ListCourses)
		courses.GET("/:id", c.CourseHandler.GetCourse)
		courses.PUT("/:id", protect, publishers, c.CourseHandler.UpdateCourse)
		courses.DELETE("/:id", protect, publishers, c.CourseHandler.DeleteCourse)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	protect := c.Authenticator.Protect()
	reviewers := middleware.Authorize(auth.RoleUser, auth.RoleAdmin)

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.PUT("/:id", protect, reviewers, c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", protect, reviewers, c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			log.Error().Err(err).Msg("[HEALTH] Database check failed")
			dbStatus = "error"
		}

		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("[HEALTH] Redis check failed")
			redisStatus = "error"
		}

		storageStatus := "ok"
		if appCtx.Files == nil {
			storageStatus = "disconnected"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		// A failed dependency is a server error
		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusInternalServerError
		}

		c.JSON(statusCode, health)
	}
}
