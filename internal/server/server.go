package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kweisser/sentimeter/internal/config"
	apperrors "github.com/kweisser/sentimeter/internal/errors"
	"github.com/kweisser/sentimeter/internal/sentiment"
)

// SentimentService is the engine surface the handlers need.
type SentimentService interface {
	Analyze(ctx context.Context, text string) sentiment.Result
	Classify(ctx context.Context, text string) string
	Backend() string
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	svc       SentimentService
	redis     *goredis.Client
	startTime time.Time
}

// NewServer assembles the Echo instance, middleware, and routes.
// redisClient may be nil when no Redis tier is configured.
func NewServer(cfg *config.Config, svc SentimentService, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	if len(cfg.CORSAllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSAllowedOrigins,
		}))
	}

	srv := &Server{
		echo:      e,
		config:    cfg,
		svc:       svc,
		redis:     redisClient,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
