// Package server exposes the action registry over HTTP: the dialogue
// engine's action webhook plus a tool surface for LLM orchestrators.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/graph/tools"
	"github.com/Trippy-actions/server/internal/agent/model"
	"github.com/Trippy-actions/server/internal/core"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

type Server struct {
	registry *actions.Registry
	tools    *tools.Runner
	engine   *gin.Engine
	cfg      model.ServerConfig
}

func New(env core.Environment, cfg model.ServerConfig, reg *actions.Registry, runner *tools.Runner) *Server {
	gin.SetMode(env.ServerMode())

	engine := gin.New()
	engine.Use(RequestID(), AccessLog(), Recovery())
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(CORS(cfg.CORSOrigins))
	}

	s := &Server{registry: reg, tools: runner, engine: engine, cfg: cfg}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)
	s.engine.POST("/webhook", s.webhook)
	s.engine.GET("/actions", s.listActions)

	tool := s.engine.Group("/tools")
	{
		tool.GET("", s.listTools)
		tool.POST("/:name", s.invokeTool)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", srv.Addr).Msg("action server listening")
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

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logx.Info().Msg("action server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
