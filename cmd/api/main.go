package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorlink/mentorlink-api/config"
	"github.com/mentorlink/mentorlink-api/internal/cache"
	"github.com/mentorlink/mentorlink-api/internal/database/postgres"
	"github.com/mentorlink/mentorlink-api/internal/handlers"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
	"github.com/mentorlink/mentorlink-api/pkg/db"
	"github.com/mentorlink/mentorlink-api/pkg/jwt"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/mailer"
	"github.com/mentorlink/mentorlink-api/pkg/meet"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"github.com/mentorlink/mentorlink-api/pkg/profiling"
	"github.com/mentorlink/mentorlink-api/pkg/storage"
	"github.com/mentorlink/mentorlink-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerMentorRoutes registers the mentor-facing route group
func registerMentorRoutes(
	group *gin.RouterGroup,
	profileRateLimiter *middleware.RateLimiter,
	dashboardHandler *handlers.DashboardHandler,
	profileHandler *handlers.ProfileHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	requestsHandler *handlers.RequestsHandler,
	sessionsHandler *handlers.SessionsHandler,
) {
	group.GET("/dashboard", dashboardHandler.Summary)

	group.GET("/profile", profileHandler.GetProfile)
	group.POST("/profile", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.SaveProfile)
	group.POST("/profile/picture", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.UploadPicture)

	group.GET("/availability", availabilityHandler.ListAvailability)
	group.POST("/availability", availabilityHandler.AddAvailability)
	group.DELETE("/availability/:id", availabilityHandler.DeleteAvailability)

	group.GET("/requests", requestsHandler.ListMentorRequests)
	group.POST("/requests/:id/accept", requestsHandler.AcceptRequest)
	group.POST("/requests/:id/reject", requestsHandler.RejectRequest)

	group.GET("/sessions", sessionsHandler.ListSessions)
	group.POST("/sessions/:id/remind", sessionsHandler.RemindSession)
}

// registerMenteeRoutes registers the mentee-facing route group
func registerMenteeRoutes(
	group *gin.RouterGroup,
	profileRateLimiter *middleware.RateLimiter,
	dashboardHandler *handlers.DashboardHandler,
	profileHandler *handlers.ProfileHandler,
	mentorsHandler *handlers.MentorsHandler,
	requestsHandler *handlers.RequestsHandler,
	sessionsHandler *handlers.SessionsHandler,
) {
	group.GET("/dashboard", dashboardHandler.Summary)

	group.GET("/mentors", mentorsHandler.ListMentors)
	group.GET("/mentors/:id", mentorsHandler.GetMentor)

	group.GET("/profile", profileHandler.GetProfile)
	group.POST("/profile", profileRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.SaveProfile)

	group.POST("/requests", middleware.BodySizeLimitMiddleware(100*1024), requestsHandler.CreateRequest)
	group.GET("/requests", requestsHandler.ListMenteeRequests)

	group.GET("/sessions", sessionsHandler.ListSessions)
}

// runSweeps starts the background reminder and stale-request sweeps.
// Both stop when ctx is cancelled.
func runSweeps(ctx context.Context, cfg *config.Config, sessionsService services.SessionsServiceInterface, requestsService services.RequestsServiceInterface) {
	go func() {
		window := time.Duration(cfg.Scheduler.ReminderWindowMinutes) * time.Minute
		ticker := time.NewTicker(time.Duration(cfg.Scheduler.ReminderSweepSeconds) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := sessionsService.SendReminders(ctx, window); err != nil {
					logger.Error("Reminder sweep failed", zap.Error(err))
				}
			}
		}
	}()

	if cfg.Scheduler.RequestMaxAgeHours <= 0 {
		logger.Info("Stale-request sweep disabled")
		return
	}

	go func() {
		maxAge := time.Duration(cfg.Scheduler.RequestMaxAgeHours) * time.Hour
		ticker := time.NewTicker(time.Duration(cfg.Scheduler.RequestSweepSeconds) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rejected, err := requestsService.SweepExpired(ctx, maxAge)
				if err != nil {
					logger.Error("Stale-request sweep failed", zap.Error(err))
					continue
				}
				if rejected > 0 {
					logger.Info("Stale requests auto-rejected", zap.Int64("count", rejected))
				}
			}
		}
	}()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorLink API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Continuous profiling (no-op unless enabled)
	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before starting the app: ./migrate or docker-compose run migrate

	dbClient := postgres.NewClient(pool)

	// Object storage for profile pictures. Optional: without credentials
	// profile saves still work, only image uploads are reported as failed.
	var imageStorage services.ImageStorage
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, storageErr := storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if storageErr != nil {
			logger.Fatal("Failed to initialize object storage client", zap.Error(storageErr))
		}
		imageStorage = storageClient
	} else {
		logger.Warn("Object storage not configured: profile picture uploads will fail")
	}

	// SMTP mailer. Optional: notification and reminder emails degrade to
	// logged failures when SMTP is not configured.
	var sender mailer.Sender
	smtpMailer, err := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		logger.Warn("SMTP not configured: session emails will not be sent", zap.Error(err))
		sender = mailer.Disabled{}
	} else {
		sender = smtpMailer
	}

	// Google Calendar client for Meet links. Accepting a request requires
	// a meeting link, so this collaborator is mandatory.
	meetClient, err := meet.NewClient(context.Background(),
		cfg.Calendar.CredentialsFile,
		cfg.Calendar.CalendarID,
		cfg.Calendar.TimeZone,
	)
	if err != nil {
		logger.Fatal("Failed to initialize calendar client", zap.Error(err))
	}

	tokenManager := jwt.NewTokenManager(
		cfg.Session.JWTSecret,
		cfg.Session.JWTIssuer,
		cfg.Session.SessionTTLHours,
	)

	// Mentor directory cache, populated synchronously before the container
	// is marked healthy
	directoryCache := cache.NewDirectoryCache(dbClient, cfg.Cache.DirectoryTTLSeconds)
	if cfg.Cache.DisableMentorsDirCache {
		logger.Warn("Mentor directory cache is DISABLED - reading from database on every request")
	} else {
		if err := directoryCache.Initialize(); err != nil {
			logger.Fatal("Failed to initialize mentor directory cache", zap.Error(err))
		}
	}

	// Initialize services
	authService := services.NewAuthService(dbClient, tokenManager, cfg)
	profileService := services.NewProfileService(dbClient, dbClient, imageStorage)
	availabilityService := services.NewAvailabilityService(dbClient)
	schedulerService := services.NewSchedulerService(dbClient, dbClient, meetClient, sender, cfg)
	requestsService := services.NewRequestsService(dbClient, dbClient, schedulerService)
	sessionsService := services.NewSessionsService(dbClient, sender)
	dashboardService := services.NewDashboardService(dbClient, dbClient, dbClient)
	mentorsService := services.NewMentorsService(directoryCache, dbClient, cfg.Cache.DisableMentorsDirCache)
	adminService := services.NewAdminService(dbClient)

	// Create the bootstrap admin account on first start
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(bootstrapCtx); err != nil {
		cancelBootstrap()
		logger.Fatal("Failed to ensure bootstrap admin account", zap.Error(err))
	}
	cancelBootstrap()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	requestsHandler := handlers.NewRequestsHandler(requestsService)
	sessionsHandler := handlers.NewSessionsHandler(sessionsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	mentorsHandler := handlers.NewMentorsHandler(mentorsService)
	adminHandler := handlers.NewAdminHandler(adminService)

	directoryReady := directoryCache.IsReady
	if cfg.Cache.DisableMentorsDirCache {
		directoryReady = func() bool { return true }
	}
	healthHandler := handlers.NewHealthHandler(directoryReady)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the configured origins, credentials required for the
	// session cookie
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	loginRateLimiter := middleware.NewRateLimiter(1, 5)       // 1 req/sec, burst of 5 (credential stuffing)
	profileRateLimiter := middleware.NewRateLimiter(10, 20)   // 10 req/sec, burst of 20
	defer generalRateLimiter.Stop()
	defer loginRateLimiter.Stop()
	defer profileRateLimiter.Stop()

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	sessionAuth := middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Authentication routes
	auth := router.Group("/api/v1/auth")
	auth.POST("/login", loginRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", sessionAuth, authHandler.Me)
	auth.POST("/change-password", sessionAuth, middleware.BodySizeLimitMiddleware(10*1024), authHandler.ChangePassword)

	// Role-scoped route groups
	mentor := router.Group("/api/v1/mentor")
	mentor.Use(sessionAuth, middleware.RequireRole(models.RoleMentor))
	registerMentorRoutes(mentor, profileRateLimiter,
		dashboardHandler, profileHandler, availabilityHandler, requestsHandler, sessionsHandler)

	mentee := router.Group("/api/v1/mentee")
	mentee.Use(sessionAuth, middleware.RequireRole(models.RoleMentee))
	registerMenteeRoutes(mentee, profileRateLimiter,
		dashboardHandler, profileHandler, mentorsHandler, requestsHandler, sessionsHandler)

	admin := router.Group("/api/v1/admin")
	admin.Use(sessionAuth, middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", middleware.BodySizeLimitMiddleware(10*1024), adminHandler.CreateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// Background sweeps: session reminders and stale-request auto-reject
	sweepCtx, cancelSweeps := context.WithCancel(context.Background())
	defer cancelSweeps()
	runSweeps(sweepCtx, cfg, sessionsService, requestsService)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancelSweeps()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
