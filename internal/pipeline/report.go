package pipeline

import (
	"fmt"
	"time"

	"strokedash/internal/model"
	"strokedash/internal/store"
)

// QuarterResult 单个季度的导入结果
type QuarterResult struct {
	Quarter  model.Quarter `json:"quarter"`
	Status   string        `json:"status"` // imported/skipped/error
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// OverviewResult 单张概览表的生成结果
type OverviewResult struct {
	Level    model.Level `json:"level"`
	Metric   string      `json:"metric"`
	Quarters int         `json:"quarters"`
	Entities int         `json:"entities"`
	Skipped  int         `json:"skipped"` // 缺少层级或指标行的季度数
	Error    string      `json:"error,omitempty"`
}

// Report 一次运行的汇总
type Report struct {
	RunID         string           `json:"runId"`
	SkipFetch     bool             `json:"skipFetch"`
	Quarters      []QuarterResult  `json:"quarters"`
	Imported      int              `json:"imported"`
	Skipped       int              `json:"skipped"`
	Failed        int              `json:"failed"`
	TablesLoaded  int              `json:"tablesLoaded"`
	Overviews     []OverviewResult `json:"overviews"`
	SeriesWritten int              `json:"seriesWritten"`
	SeriesMissing int              `json:"seriesMissing"`
	WriteFailures int              `json:"writeFailures"` // 单个总表或序列落盘失败数
	ExportPath    string           `json:"exportPath,omitempty"`
	StartedAt     time.Time        `json:"startedAt"`
	Duration      time.Duration    `json:"duration"`
}

func (r *Report) addQuarter(res QuarterResult) {
	r.Quarters = append(r.Quarters, res)
	switch res.Status {
	case store.QuarterImported:
		r.Imported++
	case store.QuarterSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// Run 转换为运行记录
func (r *Report) Run() store.Run {
	return store.Run{
		ID:               r.RunID,
		SkipFetch:        r.SkipFetch,
		Status:           store.RunStatusCompleted,
		QuartersTotal:    len(r.Quarters),
		QuartersImported: r.Imported,
		QuartersSkipped:  r.Skipped + r.Failed,
		OverviewTables:   len(r.Overviews),
		SeriesTables:     r.SeriesWritten,
		StartedAt:        r.StartedAt,
		ErrorMessage:     r.errorSummary(),
	}
}

func (r *Report) errorSummary() string {
	if r.WriteFailures == 0 {
		return ""
	}
	return fmt.Sprintf("%d artifact writes failed", r.WriteFailures)
}
