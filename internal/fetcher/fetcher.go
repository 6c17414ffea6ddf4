// Package fetcher 获取季度汇总报告的原始工作簿字节。
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"strokedash/internal/model"
)

// ErrFetchFailed 获取失败（网络错误、超时、非 200、文件缺失）
var ErrFetchFailed = errors.New("fetch failed")

// DefaultURLTemplate 季度汇总报告地址，{quarter} 替换为报告期标识
const DefaultURLTemplate = "https://www.strokeaudit.org/Documents/National/Clinical/{quarter}/{quarter}-SummaryReport.aspx"

// DefaultTimeout 单次请求超时
const DefaultTimeout = 100 * time.Second

// maxBodySize 单个报告的最大体积
const maxBodySize = 64 << 20

// Fetcher 按季度获取原始工作簿
type Fetcher interface {
	Fetch(ctx context.Context, q model.Quarter) ([]byte, error)
}

// HTTPFetcher 通过 HTTP 下载报告
type HTTPFetcher struct {
	client      *http.Client
	urlTemplate string
	userAgent   string
}

// NewHTTPFetcher 创建 HTTP 获取器，timeout <= 0 时使用默认值
func NewHTTPFetcher(urlTemplate string, timeout time.Duration) *HTTPFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		urlTemplate: urlTemplate,
		userAgent:   "strokedash/1.0",
	}
}

// URL 报告下载地址
func (f *HTTPFetcher) URL(q model.Quarter) string {
	return strings.ReplaceAll(f.urlTemplate, "{quarter}", q.String())
}

// Fetch 下载报告；超时与非 200 均按获取失败处理
func (f *HTTPFetcher) Fetch(ctx context.Context, q model.Quarter) ([]byte, error) {
	url := f.URL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, q, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, q, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d for %s", ErrFetchFailed, q, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrFetchFailed, q, err)
	}
	return body, nil
}

// DirFetcher 从本地目录读取已下载的报告（{quarter}.xlsx）
type DirFetcher struct {
	dir string
}

// NewDirFetcher 创建本地目录获取器
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{dir: dir}
}

// Fetch 读取 {dir}/{quarter}.xlsx
func (f *DirFetcher) Fetch(ctx context.Context, q model.Quarter) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, q, err)
	}
	data, err := os.ReadFile(filepath.Join(f.dir, q.String()+".xlsx"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, q, err)
	}
	return data, nil
}
