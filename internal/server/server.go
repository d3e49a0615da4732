package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/store"
)

// Server is the HTTP API surface over the PnL and insight capabilities.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	reporter   interfaces.Reporter
	prices     interfaces.PriceSource
	insight    interfaces.InsightGenerator
	cfg        *store.Config
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg *store.Config, reporter interfaces.Reporter, prices interfaces.PriceSource, insight interfaces.InsightGenerator) *Server {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		router:   router,
		reporter: reporter,
		prices:   prices,
		insight:  insight,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/hyperliquid/:wallet/pnl", s.handleWalletPnL)
		api.POST("/token/:id/insight", s.handleTokenInsight)
	}
}

// requestID tags every request with an id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
