package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"strokedash/internal/pipeline"
)

// Process 运行一次处理流程，请求体可省略
// POST /api/process
func (h *Handler) Process(c *gin.Context) {
	var req pipeline.ProcessOptions
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	// 客户端断开不应中断批次
	ctx := context.WithoutCancel(c.Request.Context())
	report, err := h.processor.ProcessAll(ctx, req)
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("process failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}
