package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"strokedash/internal/server"
	"strokedash/internal/util"
)

var (
	port        int
	devMode     bool
	openBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动只读查询接口",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// config.toml 显式配置的端口优先
		if port > 0 && !a.info.PortSpecified {
			a.cfg.Server.Port = port
		}
		if devMode {
			a.cfg.Server.DevMode = true
		}

		srv, err := server.NewServer(a.cfg, a.pipeline, a.artifacts, a.store, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		url := fmt.Sprintf("http://localhost:%d/api/status", a.cfg.Server.Port)
		if openBrowser {
			if err := util.OpenBrowser(url); err != nil {
				logger.Warn("open browser failed", zap.String("url", url), zap.Error(err))
			}
		}

		return srv.Run(ctx, fmt.Sprintf(":%d", a.cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "服务端口 (仅当 config.toml 未配置 port 时生效)")
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "启动后打开浏览器")
}
