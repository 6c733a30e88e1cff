// Package server exposes the idea commands as a local JSON API for a UI shell.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idea-generator/internal/models"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Commands is the command surface the routes call into.
type Commands interface {
	GenerateIdea(ctx context.Context, category, apiKey string) (*models.Idea, error)
	TestAPIKey(ctx context.Context, apiKey string) (bool, error)
	GetAPIKey(ctx context.Context) (string, bool, error)
	SetAPIKey(ctx context.Context, apiKey string) error
	DeleteAPIKey(ctx context.Context) error
	ResolveAPIKey(ctx context.Context, explicit string) (string, error)
}

type Config struct {
	ServiceName     string
	Address         string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	AllowedOrigins  []string
}

type Server struct {
	config   *Config
	commands Commands
	gatherer prometheus.Gatherer
	logger   Logger
	router   *gin.Engine
}

// New builds the router. A nil gatherer serves the default registry.
func New(config *Config, commands Commands, gatherer prometheus.Gatherer, log Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		config:   config,
		commands: commands,
		gatherer: gatherer,
		logger:   log,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), recovery(s.logger), originGuard(s.config.AllowedOrigins))
	if s.config.ServiceName != "" {
		r.Use(tracing(s.config.ServiceName)...)
	}

	r.GET("/healthz", s.health)
	if s.config.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.POST("/ideas", s.generateIdea)
		api.GET("/categories", s.categories)

		keys := api.Group("/keys")
		keys.GET("", s.getKey)
		keys.PUT("", s.setKey)
		keys.DELETE("", s.deleteKey)
		keys.POST("/test", s.testKey)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http bridge listening", map[string]interface{}{"address": s.config.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http bridge", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
