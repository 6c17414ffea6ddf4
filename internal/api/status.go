package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"strokedash/internal/model"
	"strokedash/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized bool       `json:"initialized"` // 是否已有完成的处理批次
	Running     bool       `json:"running"`     // 是否有批次在运行
	LastRun     *store.Run `json:"lastRun"`     // 最近一次批次
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	run, err := h.store.LatestRun()
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized: run != nil && run.Status == store.RunStatusCompleted,
		Running:     h.processor.Running(),
		LastRun:     run,
	})
}

// QuarterItem 报告期及其最近一次导入结果
type QuarterItem struct {
	Quarter model.Quarter `json:"quarter"`
	Date    string        `json:"date"`
	Status  string        `json:"status"` // imported/skipped/error/pending
	Rows    int           `json:"rows"`
	Columns int           `json:"columns"`
	Error   string        `json:"error,omitempty"`
}

// ListQuarters 列出全部报告期
// GET /api/quarters
func (h *Handler) ListQuarters(c *gin.Context) {
	imports, err := h.store.ListQuarterImports()
	if err != nil {
		h.writeError(c, err)
		return
	}

	quarters := model.Quarters(h.now())
	items := make([]QuarterItem, 0, len(quarters))
	for _, q := range quarters {
		item := QuarterItem{
			Quarter: q,
			Date:    q.Date().Format("2006-01-02"),
			Status:  "pending",
		}
		if it, ok := imports[q.String()]; ok {
			item.Status = it.Status
			item.Rows = it.Rows
			item.Columns = it.Columns
			item.Error = it.ErrorMessage
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
