package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"strokedash/internal/model"
	"strokedash/internal/summary"
)

// SeriesResponse 实体序列及最新变化
type SeriesResponse struct {
	Series *model.SeriesTable    `json:"series"`
	Deltas []summary.MetricDelta `json:"deltas"`
}

// GetSeries 实体序列
// GET /api/series/:level/:entity
func (h *Handler) GetSeries(c *gin.Context) {
	level, ok := levelParam(c)
	if !ok {
		return
	}
	series, err := h.artifacts.ReadSeries(level, c.Param("entity"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SeriesResponse{
		Series: series,
		Deltas: summary.MetricDeltas(series),
	})
}
