package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/deskd/internal/api/http"
	"github.com/GriffinCanCode/deskd/internal/api/middleware"
	"github.com/GriffinCanCode/deskd/internal/api/ws"
	"github.com/GriffinCanCode/deskd/internal/domain/registry"
	"github.com/GriffinCanCode/deskd/internal/domain/session"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/config"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/deskd/internal/providers/widget"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	session *session.Manager
	store   *storage.Adapter
	hub     *ws.Hub
	widgets *widget.Refresher
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer builds the session and every surface around it
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing deskd",
		zap.String("addr", cfg.Server.Host+":"+cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("data_dir", cfg.Storage.DataDir),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("deskd", logger.Component("tracing"))

	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.DataDir)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	store := storage.NewAdapter(backend, logger.Component("storage")).WithMetrics(metrics)

	catalog, err := registry.Load(cfg.Desktop.Catalog)
	if err != nil {
		_ = store.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	sess, err := session.New(context.Background(), session.Options{
		Store:   store,
		Catalog: catalog,
		Probe:   settings.StaticProbe(cfg.Desktop.PrefersDark),
		Logger:  logger.Logger,
		Metrics: metrics,
	})
	if err != nil {
		_ = store.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	widgets := widget.New(widget.Options{
		Sources: []widget.Source{
			{Name: widget.Weather, URL: cfg.Widgets.WeatherURL},
			{Name: widget.News, URL: cfg.Widgets.NewsURL},
		},
		Timeout: cfg.Widgets.Timeout,
		Logger:  logger.Component("widgets"),
		Metrics: metrics,
		Tracer:  tracer,
	})

	hub := ws.NewHub(sess, ws.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		Logger:         logger.Logger,
		Metrics:        metrics,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limit := middleware.DefaultRateLimitConfig()
		limit.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limit.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limit))
	}

	apihttp.NewHandlers(sess, widgets, tracer, logger.Logger).Register(router)
	router.GET("/stream", hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized",
		zap.Int("apps", len(sess.Apps())),
		zap.Strings("widgets", widgets.Sources()),
	)

	return &Server{
		router:  router,
		session: sess,
		store:   store,
		hub:     hub,
		widgets: widgets,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Session returns the desktop session
func (s *Server) Session() *session.Manager {
	return s.session
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if started := s.widgets.Refresh(ctx); started > 0 {
		s.logger.Info("Widget refresh started", zap.Int("sources", started))
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close releases background workers and storage
func (s *Server) Close() error {
	s.hub.Close()
	s.widgets.Close()
	s.tracer.Close()

	var err error
	if cerr := s.store.Close(); cerr != nil {
		s.logger.Error("Failed to close storage", zap.Error(cerr))
		err = fmt.Errorf("failed to close storage: %w", cerr)
	}
	_ = s.logger.Sync()
	return err
}
