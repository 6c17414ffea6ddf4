package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// 环境变量覆盖
const (
	EnvDataDir     = "STROKEDASH_DATA_DIR"
	EnvURLTemplate = "STROKEDASH_FETCH_URL_TEMPLATE"
	EnvSourceDir   = "STROKEDASH_FETCH_SOURCE_DIR"
)

// 数据目录下的子目录
var subdirs = []string{"raw", "overview", "processed", "exports"}

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Fetch    FetchConfig    `toml:"fetch"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Export   ExportConfig   `toml:"export"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// FetchConfig 报告获取配置
type FetchConfig struct {
	URLTemplate string `toml:"url_template"`
	// SourceDir 非空时从本地目录读取 {quarter}.xlsx，不走网络
	SourceDir      string `toml:"source_dir"`
	SheetName      string `toml:"sheet_name"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Concurrency    int    `toml:"concurrency"`
}

// Timeout 单次请求超时
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PipelineConfig 处理流程配置
type PipelineConfig struct {
	Metrics         []string `toml:"metrics"`
	DiscoverMetrics bool     `toml:"discover_metrics"`
}

// ExportConfig 工作簿导出配置
type ExportConfig struct {
	Workbook bool   `toml:"workbook"`
	Path     string `toml:"path"`
}

// ScheduleConfig 定时重跑配置，Cron 为空表示不启用
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Fetch: FetchConfig{
			URLTemplate:    "https://www.strokeaudit.org/Documents/National/Clinical/{quarter}/{quarter}-SummaryReport.aspx",
			SheetName:      "Scoring Summary",
			TimeoutSeconds: 100,
			Concurrency:    4,
		},
		Pipeline: PipelineConfig{
			Metrics: []string{"SSNAP score"},
		},
		Export: ExportConfig{
			Workbook: false,
			Path:     filepath.Join("exports", "overview.xlsx"),
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadFrom 从指定路径加载配置；文件不存在时使用默认配置
// 加载顺序：默认值 → config.toml → .env → 环境变量
func LoadFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// .env 可选，已存在的环境变量优先
	_ = godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))
	applyEnv(config)
	normalize(config)

	return config, info, nil
}

func applyEnv(config *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		config.Data.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvURLTemplate)); v != "" {
		config.Fetch.URLTemplate = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSourceDir)); v != "" {
		config.Fetch.SourceDir = v
	}
}

// normalize 补齐被配置文件清空的必要字段
func normalize(config *AppConfig) {
	def := DefaultConfig()
	if config.Fetch.Concurrency <= 0 {
		config.Fetch.Concurrency = def.Fetch.Concurrency
	}
	if config.Fetch.TimeoutSeconds <= 0 {
		config.Fetch.TimeoutSeconds = def.Fetch.TimeoutSeconds
	}
	if strings.TrimSpace(config.Fetch.SheetName) == "" {
		config.Fetch.SheetName = def.Fetch.SheetName
	}
	if len(config.Pipeline.Metrics) == 0 {
		config.Pipeline.Metrics = def.Pipeline.Metrics
	}
	if config.Export.Path == "" {
		config.Export.Path = def.Export.Path
	}
}

// ResolveDataDir 数据目录的绝对路径；相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// ExportPath 工作簿导出路径；相对路径以数据目录为基准
func ExportPath(config *AppConfig, dataDir string) string {
	if filepath.IsAbs(config.Export.Path) {
		return config.Export.Path
	}
	return filepath.Join(dataDir, config.Export.Path)
}

// DBPath SQLite 数据库路径
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "strokedash.db")
}
