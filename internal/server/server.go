package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"strokedash/internal/api"
	"strokedash/internal/artifact"
	"strokedash/internal/config"
	"strokedash/internal/pipeline"
	"strokedash/internal/store"
)

// 优雅退出等待时间
const shutdownTimeout = 10 * time.Second

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	api      *api.Handler
	pipeline *pipeline.Pipeline
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewServer 创建服务器；schedule.cron 非空时注册定时重跑
func NewServer(cfg *config.AppConfig, p *pipeline.Pipeline, artifacts *artifact.Store, st *store.Store, logger *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.New(),
		api:      api.NewHandler(artifacts, st, p, logger),
		pipeline: p,
		logger:   logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()

	if cfg.Schedule.Cron != "" {
		if err := s.setupSchedule(cfg.Schedule.Cron); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// setupSchedule 定时重跑处理流程（标准五段 cron 表达式）
func (s *Server) setupSchedule(spec string) error {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(s.logger.Named("cron")))
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLogger),
		cron.Recover(cronLogger),
	))
	_, err := s.cron.AddFunc(spec, s.scheduledRun)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	s.logger.Info("scheduled processing enabled", zap.String("cron", spec))
	return nil
}

func (s *Server) scheduledRun() {
	report, err := s.pipeline.ProcessAll(context.Background(), pipeline.ProcessOptions{})
	switch {
	case errors.Is(err, pipeline.ErrAlreadyRunning):
		s.logger.Info("scheduled run skipped, pipeline busy")
	case err != nil:
		s.logger.Error("scheduled run failed", zap.Error(err))
	default:
		s.logger.Info("scheduled run finished", zap.String("run_id", report.RunID))
	}
}

// Handler 路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 结束时优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	if s.cron != nil {
		s.cron.Start()
		defer func() { <-s.cron.Stop().Done() }()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
