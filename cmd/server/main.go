package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	_ "github.com/sereci/sirepre/docs"
	identityapp "github.com/sereci/sirepre/internal/application/identity"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	regapp "github.com/sereci/sirepre/internal/application/registration"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/cache"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/infrastructure/event"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/migration"
	"github.com/sereci/sirepre/internal/infrastructure/persistence"
	infraprinting "github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/internal/infrastructure/scheduler"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
	"github.com/sereci/sirepre/internal/infrastructure/telemetry"
	"github.com/sereci/sirepre/internal/interfaces/http/handler"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
	"github.com/sereci/sirepre/internal/interfaces/http/router"
	"github.com/sereci/sirepre/migrations"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const (
	mediaURLPrefix = "/media/uploads"
	qrTempMaxAge   = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting SIREPRE backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	rootCtx := context.Background()

	// Telemetry first so the database and HTTP layers pick up the global providers.
	tracerProvider, err := telemetry.NewTracerProvider(rootCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(rootCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logProvider, err := telemetry.NewLogProvider(rootCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    Version,
		Insecure:          cfg.Telemetry.Insecure,
		Level:             logger.ParseLevel(cfg.Telemetry.LogsLevel),
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	log = logProvider.Attach(log)

	profiler, err := telemetry.StartProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		Types:           cfg.Profiling.Types,
		LinkSpans:       cfg.Profiling.SpanProfiles && tracerProvider.Enabled(),
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	metrics, err := telemetry.NewRegistrationMetrics(meterProvider.Meter("sirepre/registration"))
	if err != nil {
		log.Warn("Registration metrics unavailable", zap.Error(err))
		metrics = telemetry.NewNoopRegistrationMetrics()
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if err := prepareSchema(db, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.IncludeVariables = !cfg.App.IsProduction()
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Warn("Database tracing not registered", zap.Error(err))
	}

	applicantRepo := persistence.NewGormApplicantRepository(db.DB)
	venueRepo := persistence.NewGormVenueRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	configRepo := persistence.NewGormSystemConfigRepository(db.DB)
	uploadRepo := persistence.NewGormUploadedFileRepository(db.DB)
	staffRepo := persistence.NewGormStaffUserRepository(db.DB)

	// Redis backs the venue cache and the token blacklist when enabled.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}
	venueCache := cache.NewVenueCache(redisClient, cfg.Redis.VenueCacheTTL, log)
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	documents, err := storage.New(rootCtx, &cfg.Storage, cfg.Media.UploadDir(), mediaURLPrefix, log)
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}
	log.Info("Document storage ready", zap.String("type", cfg.Storage.Type))

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if cfg.Messaging.KafkaEnabled {
		forwarder := event.NewKafkaForwarder(
			event.NewKafkaWriter(cfg.Messaging.Brokers, cfg.Messaging.Topic), nil, log)
		eventBus.Subscribe(forwarder)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Kafka event forwarding enabled",
			zap.Strings("brokers", cfg.Messaging.Brokers),
			zap.String("topic", cfg.Messaging.Topic),
		)
	}

	// Printing
	qrEncoder, err := infraprinting.NewQREncoder(cfg.Media.QRTempDir(), log)
	if err != nil {
		log.Fatal("Failed to initialize QR encoder", zap.Error(err))
	}
	receiptStore, err := infraprinting.NewReceiptStorage(infraprinting.ReceiptStorageConfig{
		ReceiptDir: cfg.Media.ReceiptDir(),
		QRTempDir:  cfg.Media.QRTempDir(),
		LogoPath:   cfg.Media.LogoPath,
		Logger:     log,
	})
	if err != nil {
		log.Fatal("Failed to initialize receipt storage", zap.Error(err))
	}
	var htmlRenderer infraprinting.HTMLRenderer
	chrome, err := infraprinting.NewChromedpRenderer(&infraprinting.ChromedpConfig{
		Timeout:   cfg.Printing.Timeout,
		RemoteURL: cfg.Printing.ChromeURL,
		ExecPath:  cfg.Printing.ChromePath,
		NoSandbox: true,
		MaxTabs:   cfg.Printing.MaxTabs,
		Logger:    log,
	})
	switch {
	case err != nil:
		log.Warn("Roster printing disabled", zap.Error(err))
	case !chrome.Available():
		log.Warn("Roster printing disabled, no Chrome binary found")
		_ = chrome.Close()
	default:
		htmlRenderer = chrome
		defer func() { _ = chrome.Close() }()
	}

	receiptService := printingapp.NewReceiptService(
		applicantRepo, venueRepo,
		infraprinting.NewFPDFMeasurer(),
		infraprinting.NewFPDFRenderer(infraprinting.DefaultFPDFRendererConfig()),
		qrEncoder, receiptStore, log,
		printingapp.WithReceiptMetrics(metrics),
	)
	rosterService := printingapp.NewRosterService(applicantRepo, venueRepo, reviewRepo, htmlRenderer, log)

	submissionService := regapp.NewSubmissionService(
		applicantRepo, uploadRepo, configRepo, documents, receiptService, eventBus, metrics, log)
	uploadService := regapp.NewUploadService(uploadRepo, documents, cfg.HTTP.MaxUploadSize, log)
	venueService := regapp.NewVenueService(venueRepo, venueCache, log)
	reviewService := regapp.NewReviewService(
		applicantRepo, venueRepo, reviewRepo, configRepo, eventBus, metrics, log)
	exportService := regapp.NewExportService(applicantRepo, venueRepo, reviewRepo, log)
	statsService := regapp.NewStatsService(applicantRepo, reviewRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(staffRepo, jwtService, blacklist, log)

	// Background housekeeping
	sched := scheduler.NewScheduler(log)
	if err := sched.Add(scheduler.Task{
		Name:       "qr-temp-cleanup",
		Interval:   15 * time.Minute,
		Timeout:    time.Minute,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			_, err := receiptStore.CleanupOlderThan(ctx, qrTempMaxAge)
			return err
		},
	}); err != nil {
		log.Fatal("Failed to register scheduled task", zap.Error(err))
	}
	sched.Start(rootCtx)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	// Middleware order: request ID, recovery, access log, security headers,
	// tracing, CORS, body limit, then rate limiting when enabled.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/api/health"))
	engine.Use(middleware.Secure())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.Enabled(),
	}))
	if tracerProvider.Enabled() {
		engine.Use(middleware.TracingAttributeInjector())
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		var limiter middleware.Limiter
		backend := "memory"
		if redisClient != nil {
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
			backend = "redis"
		} else {
			memLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
			defer memLimiter.Stop()
			limiter = memLimiter
		}
		engine.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled",
			zap.String("backend", backend),
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtMiddleware := middleware.JWTAuthMiddleware(jwtService, blacklist, log)
	uploadLimit := middleware.BodyLimit(cfg.HTTP.MaxUploadSize)

	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(context.Context) error { return db.Ping() }),
	}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	routes := router.NewRouter(engine).
		Register(handler.PostulanteRoutes(
			handler.NewPostulanteHandler(submissionService, uploadService, venueService, receiptService),
			uploadLimit)).
		Register(handler.HealthRoutes(handler.NewHealthHandler(checks))).
		Register(handler.AuthRoutes(handler.NewAuthHandler(authService), jwtMiddleware)).
		Register(handler.AdminRoutes(
			handler.NewAdminHandler(reviewService, exportService, statsService, receiptService),
			handler.NewVenueHandler(venueService, rosterService),
			jwtMiddleware, uploadLimit)).
		Setup()
	handler.RegisterMedia(engine, handler.NewMediaHandler(documents))
	engine.GET("/swagger/*any",
		middleware.DocsAccess(middleware.DocsConfig{
			Enabled:     cfg.Docs.Enabled,
			RequireAuth: cfg.Docs.RequireAuth,
			AllowedIPs:  cfg.Docs.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler))
	for _, r := range routes {
		log.Debug("Route mounted", zap.String("method", r.Method), zap.String("path", r.Path))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := sched.Stop(ctx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}
	if err := logProvider.Shutdown(ctx); err != nil {
		log.Warn("Log exporter shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// prepareSchema brings the schema up to date. SQLite is a development
// target and uses AutoMigrate; PostgreSQL runs the versioned migrations.
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver == "sqlite" {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared *sql.DB.
	return m.Up()
}
