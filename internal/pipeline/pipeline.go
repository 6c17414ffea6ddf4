// Package pipeline 串联获取、规范化、汇总与落盘，是"处理全部数据"的唯一入口。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"strokedash/internal/aggregate"
	"strokedash/internal/artifact"
	"strokedash/internal/exporter"
	"strokedash/internal/fetcher"
	"strokedash/internal/model"
	"strokedash/internal/parser"
	"strokedash/internal/store"
)

// ErrAlreadyRunning 同一 Pipeline 上已有批次在运行
var ErrAlreadyRunning = errors.New("pipeline already running")

// DefaultConcurrency 季度并发获取上限
const DefaultConcurrency = 4

// Options 流程选项
type Options struct {
	SheetName       string
	Concurrency     int
	Metrics         []string // 第一个为主指标
	DiscoverMetrics bool
	ExportPath      string // 为空表示不导出工作簿
}

// ProcessOptions 单次运行选项
type ProcessOptions struct {
	SkipFetch bool `json:"skipFetch"`
}

// Pipeline 处理流程
type Pipeline struct {
	fetcher   fetcher.Fetcher
	artifacts *artifact.Store
	store     *store.Store // 可为 nil，不记录运行日志
	logger    *zap.Logger
	opts      Options
	now       func() time.Time
	running   atomic.Bool
}

// New 创建处理流程
func New(f fetcher.Fetcher, artifacts *artifact.Store, st *store.Store, logger *zap.Logger, opts Options) *Pipeline {
	if opts.SheetName == "" {
		opts.SheetName = parser.DefaultSheetName
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = []string{aggregate.DefaultMetric}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher:   f,
		artifacts: artifacts,
		store:     st,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// SetClock 替换时钟（决定枚举到哪个季度）
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Running 是否有批次在运行
func (p *Pipeline) Running() bool {
	return p.running.Load()
}

// PrimaryMetric 用于确定实体列表的主指标
func (p *Pipeline) PrimaryMetric() string {
	return p.opts.Metrics[0]
}

// ProcessAll 执行一次完整处理
// 单个季度或指标的失败只记录不中断；只有基础设施错误会返回
func (p *Pipeline) ProcessAll(ctx context.Context, opts ProcessOptions) (*Report, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer p.running.Store(false)

	report := &Report{
		RunID:     uuid.NewString(),
		SkipFetch: opts.SkipFetch,
		StartedAt: p.now(),
	}
	logger := p.logger.With(zap.String("run_id", report.RunID))
	logger.Info("pipeline started", zap.Bool("skip_fetch", opts.SkipFetch))

	if p.store != nil {
		if err := p.store.CreateRun(report.RunID, opts.SkipFetch, report.StartedAt); err != nil {
			return nil, err
		}
	}

	err := p.process(ctx, logger, opts, report)
	report.Duration = p.now().Sub(report.StartedAt)

	if p.store != nil {
		run := report.Run()
		if err != nil {
			run.Status = store.RunStatusFailed
			run.ErrorMessage = err.Error()
		}
		if cerr := p.store.CompleteRun(run, p.now()); cerr != nil {
			logger.Error("record run failed", zap.Error(cerr))
		}
	}

	if err != nil {
		logger.Error("pipeline failed", zap.Error(err))
		return report, err
	}
	logger.Info("pipeline finished",
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped),
		zap.Int("overviews", len(report.Overviews)),
		zap.Int("series", report.SeriesWritten),
		zap.Int("write_failures", report.WriteFailures),
		zap.Duration("duration", report.Duration))
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, logger *zap.Logger, opts ProcessOptions, report *Report) error {
	// 目录级失败中断整批，单个文件失败在各步骤内记录
	if err := p.artifacts.EnsureLayout(); err != nil {
		return err
	}

	if !opts.SkipFetch {
		if err := p.importQuarters(ctx, logger, report); err != nil {
			return err
		}
	}

	tables, err := p.artifacts.LoadRawTables()
	if err != nil {
		return fmt.Errorf("load raw tables: %w", err)
	}
	report.TablesLoaded = len(tables)
	if err := ctx.Err(); err != nil {
		return err
	}

	overviews := p.buildOverviews(logger, tables, report)

	if err := p.buildSeries(ctx, logger, tables, overviews, report); err != nil {
		return err
	}

	if p.opts.ExportPath != "" {
		all := make([]*model.OverviewTable, 0, len(overviews))
		for _, level := range model.AllLevels() {
			all = append(all, overviews[level]...)
		}
		progress := func(ev exporter.ProgressEvent) {
			logger.Debug("export progress", zap.String("stage", ev.Stage), zap.Int("percent", ev.Percent))
		}
		if err := exporter.NewExporter(progress).Write(p.opts.ExportPath, all); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		report.ExportPath = p.opts.ExportPath
		logger.Info("workbook exported", zap.String("path", p.opts.ExportPath), zap.Int("sheets", len(all)))
	}
	return nil
}

// importQuarters 并发获取并规范化全部季度，每个协程只写自己的结果槽
func (p *Pipeline) importQuarters(ctx context.Context, logger *zap.Logger, report *Report) error {
	quarters := model.Quarters(p.now())
	results := make([]QuarterResult, len(quarters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, q := range quarters {
		g.Go(func() error {
			results[i] = p.importQuarter(gctx, logger, q)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		report.addQuarter(res)
		if p.store == nil {
			continue
		}
		if err := p.store.UpsertQuarterImport(store.QuarterImport{
			Quarter:      res.Quarter.String(),
			RunID:        report.RunID,
			Status:       res.Status,
			Rows:         res.Rows,
			Columns:      res.Columns,
			ErrorMessage: res.Error,
			Duration:     res.Duration,
		}); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (p *Pipeline) importQuarter(ctx context.Context, logger *zap.Logger, q model.Quarter) QuarterResult {
	start := time.Now()
	res := QuarterResult{Quarter: q}
	finish := func(status string, err error) QuarterResult {
		res.Status = status
		res.Duration = time.Since(start)
		if err != nil {
			res.Error = err.Error()
			logger.Warn("quarter skipped",
				zap.Stringer("quarter", q), zap.String("status", status), zap.Error(err))
		} else {
			logger.Debug("quarter imported",
				zap.Stringer("quarter", q), zap.Int("rows", res.Rows), zap.Int("columns", res.Columns))
		}
		return res
	}

	data, err := p.fetcher.Fetch(ctx, q)
	if err != nil {
		return finish(store.QuarterSkipped, err)
	}

	table, err := parser.ParseWorkbook(q, data, p.opts.SheetName)
	if err != nil {
		if errors.Is(err, parser.ErrSheetNotFound) {
			return finish(store.QuarterSkipped, err)
		}
		return finish(store.QuarterError, err)
	}

	if err := p.artifacts.WriteRaw(table); err != nil {
		return finish(store.QuarterError, err)
	}
	res.Rows = len(table.Rows)
	res.Columns = table.Width()
	return finish(store.QuarterImported, nil)
}

// metrics 本次需要生成概览的指标，主指标始终在首位
func (p *Pipeline) metrics(tables []*model.RawTable) []string {
	if !p.opts.DiscoverMetrics {
		return p.opts.Metrics
	}
	out := []string{p.PrimaryMetric()}
	seen := map[string]bool{p.PrimaryMetric(): true}
	for _, m := range append(append([]string{}, p.opts.Metrics...), aggregate.DiscoverMetrics(tables)...) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func (p *Pipeline) buildOverviews(logger *zap.Logger, tables []*model.RawTable, report *Report) map[model.Level][]*model.OverviewTable {
	metrics := p.metrics(tables)
	out := make(map[model.Level][]*model.OverviewTable, 3)

	for _, level := range model.AllLevels() {
		for _, metric := range metrics {
			ov, skipped := aggregate.BuildOverview(tables, level, metric)
			if len(skipped) > 0 {
				logger.Debug("quarters without row",
					zap.Stringer("level", level), zap.String("metric", metric), zap.Int("quarters", len(skipped)))
			}
			result := OverviewResult{
				Level:    level,
				Metric:   metric,
				Quarters: len(ov.Quarters),
				Entities: len(ov.Entities),
				Skipped:  len(skipped),
			}
			// 落盘失败仍保留内存中的表，序列与导出照常进行
			if err := p.artifacts.WriteOverview(ov); err != nil {
				report.WriteFailures++
				result.Error = err.Error()
				logger.Error("overview write failed", zap.Error(err))
			}
			out[level] = append(out[level], ov)
			report.Overviews = append(report.Overviews, result)
		}
	}
	return out
}

// buildSeries 为主指标概览中的每个实体生成序列
func (p *Pipeline) buildSeries(ctx context.Context, logger *zap.Logger, tables []*model.RawTable, overviews map[model.Level][]*model.OverviewTable, report *Report) error {
	for _, level := range model.AllLevels() {
		if len(overviews[level]) == 0 {
			continue
		}
		primary := overviews[level][0]
		for _, entity := range primary.Entities {
			if err := ctx.Err(); err != nil {
				return err
			}
			// 空白列名无法作为产物键
			if strings.TrimSpace(entity) == "" {
				continue
			}
			series, err := aggregate.BuildEntitySeries(tables, level, entity)
			if err != nil {
				if errors.Is(err, aggregate.ErrEntityNotFound) {
					report.SeriesMissing++
					logger.Warn("entity series skipped", zap.Error(err))
					continue
				}
				return err
			}
			if err := p.artifacts.WriteSeries(series); err != nil {
				report.WriteFailures++
				logger.Error("series write failed", zap.Error(err))
				continue
			}
			report.SeriesWritten++
		}
	}
	return nil
}
