// Package api 提供只读查询与触发处理的 HTTP 接口。
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"strokedash/internal/aggregate"
	"strokedash/internal/artifact"
	"strokedash/internal/model"
	"strokedash/internal/pipeline"
	"strokedash/internal/store"
)

// Processor 处理流程
type Processor interface {
	ProcessAll(ctx context.Context, opts pipeline.ProcessOptions) (*pipeline.Report, error)
	Running() bool
	PrimaryMetric() string
}

// Handler API 处理器
type Handler struct {
	artifacts *artifact.Store
	store     *store.Store
	processor Processor
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(artifacts *artifact.Store, st *store.Store, processor Processor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		artifacts: artifacts,
		store:     st,
		processor: processor,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 报告期
	router.GET("/quarters", h.ListQuarters)

	// 层级下的指标与实体
	router.GET("/levels/:level/metrics", h.ListMetrics)
	router.GET("/levels/:level/entities", h.ListEntities)

	// 概览
	router.GET("/overview/:level/:metric", h.GetOverview)
	router.GET("/overview/:level/:metric/summary", h.GetOverviewSummary)

	// 实体序列
	router.GET("/series/:level/:entity", h.GetSeries)

	// 重新处理
	router.POST("/process", h.Process)
}

// levelParam 解析路径中的层级，非法时直接写 400
func levelParam(c *gin.Context) (model.Level, bool) {
	level, err := model.ParseLevel(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return level, true
}

// writeError 产物不存在为 404，其余为 500
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, artifact.ErrNotFound), errors.Is(err, aggregate.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("api request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
