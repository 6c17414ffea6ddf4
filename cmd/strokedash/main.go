package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// 全局参数
	verbose    bool
	configPath string
	dataDir    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "strokedash",
	Short: "SSNAP 季度汇总报告数据处理",
	Long: `strokedash 下载 SSNAP 季度汇总报告，规范化为每季度原始表，
并生成按层级（ISDN / Trust / Team）的指标总表与实体时间序列。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (默认: 可执行文件目录下 config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quartersCmd)
	rootCmd.AddCommand(seriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
