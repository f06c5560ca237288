// Package api serves the catalog over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
)

// Catalog is the query layer used by the handlers.
type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	SearchByName(ctx context.Context, term string) ([]product.Product, error)
	SearchByColor(ctx context.Context, term string) ([]product.Product, error)
	Get(ctx context.Context, id int64) (product.Product, error)
	Insert(ctx context.Context, p product.Product) (int64, error)
	Update(ctx context.Context, p product.Product) error
	Delete(ctx context.Context, id int64) error
}

// Sessions holds the nickname.
type Sessions interface {
	Nickname() (string, error)
	Confirm(creds session.Credentials, w session.Welcome) (string, error)
}

// Server wires the handlers to an echo instance.
type Server struct {
	echo     *echo.Echo
	catalog  Catalog
	sessions Sessions
	creds    session.Credentials
	log      *zap.Logger
}

// New creates a Server with all routes registered.
func New(cat Catalog, sessions Sessions, creds session.Credentials, log *zap.Logger) *Server {
	if log == nil {
		log = zap.L()
	}
	s := &Server{
		echo:     echo.New(),
		catalog:  cat,
		sessions: sessions,
		creds:    creds,
		log:      log.Named("api"),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	g := s.echo.Group("/api")

	g.GET("/products", s.listProducts)
	g.GET("/products/:id", s.getProduct)
	g.POST("/products", s.createProduct)
	g.PUT("/products/:id", s.updateProduct)
	g.DELETE("/products/:id", s.deleteProduct)

	g.GET("/session", s.getSession)
	g.PUT("/session", s.putSession)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}
