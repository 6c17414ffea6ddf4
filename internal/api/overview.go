package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"strokedash/internal/model"
	"strokedash/internal/summary"
)

// 排名与变化榜单长度
const rankSize = 5

// ListMetrics 层级下已生成概览的指标
// GET /api/levels/:level/metrics
func (h *Handler) ListMetrics(c *gin.Context) {
	level, ok := levelParam(c)
	if !ok {
		return
	}
	metrics, err := h.artifacts.ListOverviewMetrics(level)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"level":   level,
		"primary": h.processor.PrimaryMetric(),
		"items":   metrics,
	})
}

// ListEntities 主指标概览中的实体，按名称排序
// GET /api/levels/:level/entities
func (h *Handler) ListEntities(c *gin.Context) {
	level, ok := levelParam(c)
	if !ok {
		return
	}
	ov, err := h.artifacts.ReadOverview(level, h.processor.PrimaryMetric())
	if err != nil {
		h.writeError(c, err)
		return
	}
	names := append([]string{}, ov.Entities...)
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"level": level, "items": names})
}

// GetOverview 概览表
// GET /api/overview/:level/:metric
func (h *Handler) GetOverview(c *gin.Context) {
	level, ok := levelParam(c)
	if !ok {
		return
	}
	ov, err := h.artifacts.ReadOverview(level, c.Param("metric"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// OverviewSummaryResponse 概览汇总
type OverviewSummaryResponse struct {
	Level        model.Level            `json:"level"`
	Metric       string                 `json:"metric"`
	NationalMean []summary.QuarterMean  `json:"nationalMean"`
	Latest       *summary.LatestSummary `json:"latest"`
	Top          []summary.Ranked       `json:"top"`
	Bottom       []summary.Ranked       `json:"bottom"`
	Movers       summary.MoverSet       `json:"movers"`
}

// GetOverviewSummary 概览汇总指标
// GET /api/overview/:level/:metric/summary
func (h *Handler) GetOverviewSummary(c *gin.Context) {
	level, ok := levelParam(c)
	if !ok {
		return
	}
	ov, err := h.artifacts.ReadOverview(level, c.Param("metric"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, OverviewSummaryResponse{
		Level:        level,
		Metric:       ov.Metric,
		NationalMean: summary.NationalMean(ov),
		Latest:       summary.Latest(ov),
		Top:          summary.TopN(ov, rankSize),
		Bottom:       summary.BottomN(ov, rankSize),
		Movers:       summary.Movers(ov, rankSize),
	})
}
