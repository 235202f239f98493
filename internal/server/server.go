package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stripboard/internal/config"
	"stripboard/internal/handler"
	authHandler "stripboard/internal/handler/auth"
	exportHandler "stripboard/internal/handler/export"
	scheduleHandler "stripboard/internal/handler/schedule"
	authModel "stripboard/internal/model/auth"
	exportModel "stripboard/internal/model/export"
	scheduleModel "stripboard/internal/model/schedule"
	"stripboard/internal/pkg/cache"
	"stripboard/internal/pkg/mongodb"
	"stripboard/internal/pkg/storagefactory"
	authRepo "stripboard/internal/repository/auth"
	exportRepo "stripboard/internal/repository/export"
	scheduleRepo "stripboard/internal/repository/schedule"
	"stripboard/internal/server/middleware"
	"stripboard/internal/service"
	exportService "stripboard/internal/service/export"
	scheduleService "stripboard/internal/service/schedule"
)

// Server is the HTTP server and its wired dependencies.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New creates the server: connects MongoDB and Redis, wires the
// repositories, services and handlers, and registers the routes.
// MongoDB is required for the API to serve; Redis is optional and the
// derived-index cache is skipped without it.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := mongodb.EnsureAllIndexes(ctx, mongoClient.Database(),
				&authModel.User{},
				&authModel.RefreshToken{},
				&scheduleModel.Schedule{},
				&exportModel.Job{},
			)
			cancel()
			if err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (s *Server) setupRoutes() error {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler(s.mongo, s.redis)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, API endpoints disabled")
		return nil
	}
	db := s.mongo.Database()

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	refreshTokens := authRepo.NewRefreshTokenRepo(db)

	// sweep refresh tokens that expired while the server was down
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := refreshTokens.DeleteExpired(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to purge expired refresh tokens")
		}
	}()

	authSvc := service.NewAuthService(
		authRepo.NewUserRepo(db),
		refreshTokens,
		jwtSecret,
		accessTokenExpiry,
		refreshTokenExpiry,
	)
	authHdl := authHandler.NewHandler(authSvc)

	v1.POST("/auth/register", authHdl.Register)
	v1.POST("/auth/login", authHdl.Login)
	v1.POST("/auth/refresh", authHdl.Refresh)
	v1.POST("/auth/logout", authHdl.Logout)
	v1.GET("/auth/me", authHdl.GetMe)

	scheduleSvc := scheduleService.NewService(scheduleRepo.NewScheduleRepo(db), s.redis)
	scheduleHdl := scheduleHandler.NewHandler(scheduleSvc)

	store, err := storagefactory.NewStorage(context.Background(), &s.cfg.Storage)
	if err != nil {
		return err
	}
	exportSvc := exportService.NewService(
		exportRepo.NewJobRepo(db),
		scheduleSvc,
		store,
		s.cfg.Export.RenderTimeout,
	)
	exportHdl := exportHandler.NewHandler(exportSvc)

	protected := v1.Group("")
	protected.Use(middleware.Auth(authSvc.JWT()))
	{
		protected.GET("/schedule", scheduleHdl.GetSchedule)
		protected.POST("/schedule/scenes", scheduleHdl.AddScene)
		protected.DELETE("/schedule/scenes/:scene_id", scheduleHdl.DeleteScene)
		protected.GET("/schedule/suggestions", scheduleHdl.Suggestions)
		protected.GET("/schedule/stats", scheduleHdl.Stats)

		protected.GET("/breakdowns", scheduleHdl.ListBreakdowns)
		protected.GET("/breakdowns/:location", scheduleHdl.GetBreakdown)

		protected.POST("/exports", exportHdl.CreateJob)
		protected.GET("/exports", exportHdl.ListJobs)
		protected.GET("/exports/:job_id", exportHdl.GetJob)
		protected.POST("/exports/:job_id/cancel", exportHdl.CancelJob)
		protected.GET("/exports/:job_id/download", exportHdl.Download)
	}

	return nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the Gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
