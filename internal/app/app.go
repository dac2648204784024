package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vadim/contentdesk/internal/cache"
	"github.com/vadim/contentdesk/internal/config"
	httpcontroller "github.com/vadim/contentdesk/internal/controller/http"
	"github.com/vadim/contentdesk/internal/database"
	launchdao "github.com/vadim/contentdesk/internal/domain/launch/dao"
	launchpolicy "github.com/vadim/contentdesk/internal/domain/launch/policy"
	launchservice "github.com/vadim/contentdesk/internal/domain/launch/service"
	mediakitdao "github.com/vadim/contentdesk/internal/domain/mediakit/dao"
	mediakitpolicy "github.com/vadim/contentdesk/internal/domain/mediakit/policy"
	mediakitservice "github.com/vadim/contentdesk/internal/domain/mediakit/service"
	postdao "github.com/vadim/contentdesk/internal/domain/post/dao"
	postpolicy "github.com/vadim/contentdesk/internal/domain/post/policy"
	postservice "github.com/vadim/contentdesk/internal/domain/post/service"
	productdao "github.com/vadim/contentdesk/internal/domain/product/dao"
	productpolicy "github.com/vadim/contentdesk/internal/domain/product/policy"
	productservice "github.com/vadim/contentdesk/internal/domain/product/service"
	profiledao "github.com/vadim/contentdesk/internal/domain/profile/dao"
	profilepolicy "github.com/vadim/contentdesk/internal/domain/profile/policy"
	profileservice "github.com/vadim/contentdesk/internal/domain/profile/service"
	protocoldao "github.com/vadim/contentdesk/internal/domain/protocol/dao"
	protocolpolicy "github.com/vadim/contentdesk/internal/domain/protocol/policy"
	protocolservice "github.com/vadim/contentdesk/internal/domain/protocol/service"
	scheduledao "github.com/vadim/contentdesk/internal/domain/schedule/dao"
	scheduleent "github.com/vadim/contentdesk/internal/domain/schedule/entity"
	"github.com/vadim/contentdesk/internal/domain/schedule/scheduler"
	scheduleservice "github.com/vadim/contentdesk/internal/domain/schedule/service"
	"github.com/vadim/contentdesk/internal/httpx/upstream/platform"
	"github.com/vadim/contentdesk/internal/storage"
)

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger

	pool  *pgxpool.Pool
	rdb   *redis.Client
	store *cache.Store

	// Domain policies (interfaces for HTTP handlers)
	profilePolicy  *profilepolicy.Policy
	postPolicy     *postpolicy.Policy
	launchPolicy   *launchpolicy.Policy
	productPolicy  *productpolicy.Policy
	protocolPolicy *protocolpolicy.Policy
	mediaKitPolicy *mediakitpolicy.Policy
	scheduleSvc    *scheduleservice.Service

	// Scheduler for dispatching due scheduled posts
	scheduler *scheduler.Scheduler
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(30 * time.Second))

	app := &App{
		cfg:    cfg,
		router: r,
		logger: logger,
	}

	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	if err := app.initDomains(ctx); err != nil {
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	app.registerRoutes()

	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(app.scheduleSvc, cfg.Scheduler.Interval, logger)
	}

	return app, nil
}

// initInfrastructure initializes infrastructure components (DB, Redis, S3, cache)
func (a *App) initInfrastructure(ctx context.Context) error {
	pool, err := database.NewPostgresPool(ctx, a.cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	a.pool = pool

	rdb, err := database.NewRedisClient(ctx, a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	a.rdb = rdb

	a.store = cache.New()

	return nil
}

// initDomains initializes domain layers (DAO, Service, Policy)
func (a *App) initDomains(ctx context.Context) error {
	// Upstream platform client. Platforms without a token get synthetic
	// responses, so an empty config still yields a working dashboard.
	platformClient := platform.New(
		platform.WithBaseURL(a.cfg.Platforms.BaseURL),
		platform.WithCredential(platform.Instagram, a.cfg.Platforms.InstagramToken),
		platform.WithCredential(platform.TikTok, a.cfg.Platforms.TikTokToken),
		platform.WithCredential(platform.LinkedIn, a.cfg.Platforms.LinkedInToken),
		platform.WithCredential(platform.X, a.cfg.Platforms.XToken),
		platform.WithCredential(platform.Pinterest, a.cfg.Platforms.PinterestToken),
		platform.WithCredential(platform.YouTube, a.cfg.Platforms.YouTubeToken),
	)

	s3Storage, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:        a.cfg.S3.Endpoint,
		AccessKeyID:     a.cfg.S3.AccessKeyID,
		SecretAccessKey: a.cfg.S3.SecretAccessKey,
		Bucket:          a.cfg.S3.Bucket,
		Region:          a.cfg.S3.Region,
		PublicURL:       a.cfg.S3.PublicURL,
	})
	if err != nil {
		return fmt.Errorf("initializing s3 storage: %w", err)
	}

	// Profiles
	profileRepo := profiledao.NewProfilePostgres(a.pool)
	profileSvc := profileservice.New(profileRepo)
	a.profilePolicy = profilepolicy.New(
		profileSvc,
		a.store,
		a.cfg.Cache.Profiles,
		&platformMetricsAdapter{client: platformClient},
		a.rdb,
		a.cfg.Redis.MetricsTTL,
		a.logger,
	)

	// Posts
	postRepo := postdao.NewPostPostgres(a.pool)
	postSvc := postservice.New(postRepo)
	a.postPolicy = postpolicy.New(postSvc, a.store, a.cfg.Cache.Posts)

	// Launches and phases
	launchRepo := launchdao.NewLaunchPostgres(a.pool)
	phaseRepo := launchdao.NewPhasePostgres(a.pool)
	launchSvc := launchservice.New(launchRepo, phaseRepo)
	a.launchPolicy = launchpolicy.New(launchSvc, a.store, a.cfg.Cache.Launches)

	// Products
	productRepo := productdao.NewProductPostgres(a.pool)
	productSvc := productservice.New(productRepo)
	a.productPolicy = productpolicy.New(productSvc, a.store, a.cfg.Cache.Products)

	// Protocols
	protocolRepo := protocoldao.NewProtocolPostgres(a.pool)
	protocolSvc := protocolservice.New(protocolRepo)
	a.protocolPolicy = protocolpolicy.New(protocolSvc, a.store, a.cfg.Cache.Protocols)

	// Media kit
	resourceRepo := mediakitdao.NewResourcePostgres(a.pool)
	mediaKitSvc := mediakitservice.New(resourceRepo, s3Storage, a.logger)
	a.mediaKitPolicy = mediakitpolicy.New(mediaKitSvc, a.store, a.cfg.Cache.MediaKit)

	// Scheduled posts
	scheduledRepo := scheduledao.NewScheduledPostgres(a.pool)
	a.scheduleSvc = scheduleservice.New(
		scheduledRepo,
		&profileDirectoryAdapter{profiles: profileSvc},
		&platformPublisherAdapter{client: platformClient},
		0,
		a.logger,
	)

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() {
	// Health check
	a.router.Get("/healthz", a.healthHandler)
	a.router.Get("/readyz", a.readyHandler)

	// API v1
	a.router.Route("/api/v1", func(r chi.Router) {
		httpcontroller.NewProfileHandler(a.profilePolicy).RegisterRoutes(r)
		httpcontroller.NewPostHandler(a.postPolicy, a.profilePolicy).RegisterRoutes(r)
		httpcontroller.NewLaunchHandler(a.launchPolicy).RegisterRoutes(r)
		httpcontroller.NewProductHandler(a.productPolicy).RegisterRoutes(r)
		httpcontroller.NewProtocolHandler(a.protocolPolicy).RegisterRoutes(r)
		httpcontroller.NewMediaKitHandler(a.mediaKitPolicy).RegisterRoutes(r)
		httpcontroller.NewScheduleHandler(a.scheduleSvc).RegisterRoutes(r)
	})
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler handles readiness check requests
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.pool.Ping(ctx); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		go a.scheduler.Start(ctx)
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("closing redis client", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info("shutdown complete")
	return nil
}

// platformMetricsAdapter adapts platform.Client to profile policy.MetricsFetcher
type platformMetricsAdapter struct {
	client *platform.Client
}

func (a *platformMetricsAdapter) FetchMetrics(ctx context.Context, plat, handle string) (*profilepolicy.MetricsSample, error) {
	sample, err := a.client.FetchMetrics(ctx, plat, handle)
	if err != nil {
		return nil, err
	}
	return &profilepolicy.MetricsSample{
		Platform:       sample.Platform,
		Handle:         sample.Handle,
		Followers:      sample.Followers,
		GrowthRate:     sample.GrowthRate,
		EngagementRate: sample.EngagementRate,
		Impressions:    sample.Impressions,
		Reach:          sample.Reach,
		CollectedAt:    sample.CollectedAt,
		Synthetic:      sample.Synthetic,
	}, nil
}

// profileDirectoryAdapter adapts the profile service to schedule's ProfileDirectory
type profileDirectoryAdapter struct {
	profiles *profileservice.Service
}

func (a *profileDirectoryAdapter) Resolve(ctx context.Context, profileID string) (string, string, error) {
	prof, err := a.profiles.GetByID(ctx, profileID)
	if err != nil {
		return "", "", err
	}
	return string(prof.Platform), prof.Handle, nil
}

// platformPublisherAdapter adapts platform.Client to schedule's Publisher
type platformPublisherAdapter struct {
	client *platform.Client
}

func (a *platformPublisherAdapter) Publish(ctx context.Context, plat, handle string, content scheduleent.Content, at time.Time) (string, error) {
	res, err := a.client.SchedulePost(ctx, platform.SchedulePostInput{
		Platform:     plat,
		Handle:       handle,
		Text:         content.Text,
		Hashtags:     content.Hashtags,
		MediaURLs:    content.MediaURLs,
		ScheduledFor: at,
	})
	if err != nil {
		return "", err
	}
	return res.ExternalID, nil
}
