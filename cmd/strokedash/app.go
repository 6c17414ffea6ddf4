package main

import (
	"fmt"

	"go.uber.org/zap"

	"strokedash/internal/artifact"
	"strokedash/internal/config"
	"strokedash/internal/fetcher"
	"strokedash/internal/pipeline"
	"strokedash/internal/store"
)

// app 命令共用的组件
type app struct {
	cfg       *config.AppConfig
	info      config.LoadConfigInfo
	dataDir   string
	artifacts *artifact.Store
	store     *store.Store
	pipeline  *pipeline.Pipeline
}

// openApp 加载配置并初始化存储与处理流程
func openApp() (*app, error) {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if configPath != "" {
		cfg, info, err = config.LoadFrom(configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	st, err := store.New(config.DBPath(dir))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		info:      info,
		dataDir:   dir,
		artifacts: artifact.New(dir),
		store:     st,
	}
	a.pipeline = pipeline.New(a.fetcher(), a.artifacts, st, logger, a.pipelineOptions())

	logger.Debug("config loaded",
		zap.String("path", info.Path),
		zap.Bool("found", info.FileFound),
		zap.String("data_dir", dir))
	return a, nil
}

func (a *app) fetcher() fetcher.Fetcher {
	if a.cfg.Fetch.SourceDir != "" {
		return fetcher.NewDirFetcher(a.cfg.Fetch.SourceDir)
	}
	return fetcher.NewHTTPFetcher(a.cfg.Fetch.URLTemplate, a.cfg.Fetch.Timeout())
}

func (a *app) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		SheetName:       a.cfg.Fetch.SheetName,
		Concurrency:     a.cfg.Fetch.Concurrency,
		Metrics:         a.cfg.Pipeline.Metrics,
		DiscoverMetrics: a.cfg.Pipeline.DiscoverMetrics,
	}
	if a.cfg.Export.Workbook {
		opts.ExportPath = config.ExportPath(a.cfg, a.dataDir)
	}
	return opts
}

func (a *app) Close() error {
	return a.store.Close()
}
