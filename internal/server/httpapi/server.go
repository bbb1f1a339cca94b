// Package httpapi exposes the tracker's JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
	"github.com/dmitrijs2005/prisynced/internal/server/services"
)

// UserAPI is the account surface used by the handlers.
type UserAPI interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TrackingAPI is the tracking surface used by the handlers.
type TrackingAPI interface {
	Add(ctx context.Context, recipient, productURL string) (*services.AddResult, error)
	List(ctx context.Context, recipient string) ([]*models.Item, error)
	Remove(ctx context.Context, recipient, productURL string) error
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserAPI
	tracking  TrackingAPI
	jwtSecret []byte
	tokenTTL  time.Duration
	router    *gin.Engine
}

func NewServer(address string, l logging.Logger, us UserAPI, ts TrackingAPI, secretKey string, tokenTTL time.Duration) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		tracking:  ts,
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
	s.router = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.requestLogger())

	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	api.POST("/register", s.register)
	api.POST("/login", s.login)

	track := api.Group("/track", s.authRequired())
	track.POST("", s.addItem)
	track.GET("", s.listItems)
	track.DELETE("", s.removeItem)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
