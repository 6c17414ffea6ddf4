// Package artifact 负责季度原始表、指标总表与单实体序列的 CSV 落盘与读取。
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"strokedash/internal/model"
)

// ErrNotFound 产物文件不存在
var ErrNotFound = errors.New("artifact not found")

const (
	rawDir      = "raw"
	overviewDir = "overview/by_metric"
	seriesDir   = "processed"

	overviewIndex = "index.csv" // 层级与真实指标名的清单

	dateLayout = "2006-01-02"
)

// Store 基于目录的产物存储
//
//	raw/{quarter}.csv
//	overview/by_metric/summary_data_{Level}_{metric}.csv
//	overview/by_metric/index.csv
//	processed/{LEVEL}/{entity}.csv
type Store struct {
	root string
	mu   sync.Mutex // 保护 index.csv 的读改写
}

// New 创建产物存储
func New(root string) *Store {
	return &Store{root: root}
}

// Root 根目录
func (s *Store) Root() string {
	return s.root
}

// EnsureLayout 预建全部产物目录，失败说明数据目录不可用
func (s *Store) EnsureLayout() error {
	dirs := []string{rawDir, overviewDir}
	for _, level := range model.AllLevels() {
		dirs = append(dirs, filepath.Join(seriesDir, level.Name()))
	}
	for _, d := range dirs {
		if err := ensureDir(filepath.Join(s.root, d)); err != nil {
			return fmt.Errorf("prepare artifact dir %s: %w", d, err)
		}
	}
	return nil
}

func (s *Store) rawPath(q model.Quarter) string {
	return filepath.Join(s.root, rawDir, q.String()+".csv")
}

func (s *Store) overviewPrefix(level model.Level) string {
	return "summary_data_" + level.Label() + "_"
}

func (s *Store) overviewPath(level model.Level, metric string) string {
	return filepath.Join(s.root, overviewDir, s.overviewPrefix(level)+fileKey(metric)+".csv")
}

func (s *Store) seriesPath(level model.Level, entity string) string {
	return filepath.Join(s.root, seriesDir, level.Name(), fileKey(entity)+".csv")
}

// WriteRaw 写入季度原始表（覆盖旧文件）
func (s *Store) WriteRaw(t *model.RawTable) error {
	width := t.Width()
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	for _, row := range t.Rows {
		rec := make([]string, 0, width+1)
		rec = append(rec, row.Label)
		rec = append(rec, pad(row.Cells, width)...)
		records = append(records, rec)
	}
	if err := writeCSVAtomic(s.rawPath(t.Quarter), records); err != nil {
		return fmt.Errorf("write raw %s: %w", t.Quarter, err)
	}
	return nil
}

// ReadRaw 读取季度原始表
func (s *Store) ReadRaw(q model.Quarter) (*model.RawTable, error) {
	records, err := readCSV(s.rawPath(q))
	if err != nil {
		return nil, err
	}
	header := records[0]
	width := len(header) - 1
	if width < 0 {
		width = 0
	}

	t := &model.RawTable{Quarter: q, Header: header}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		t.Rows = append(t.Rows, model.RawRow{
			Label: rec[0],
			Cells: pad(rec[1:], width),
		})
	}
	return t, nil
}

// ListRawQuarters 已落盘的季度（升序），忽略无法识别的文件名
func (s *Store) ListRawQuarters() ([]model.Quarter, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, rawDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list raw quarters: %w", err)
	}

	var out []model.Quarter
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		q, err := model.ParseQuarter(strings.TrimSuffix(e.Name(), ".csv"))
		if err != nil {
			continue
		}
		out = append(out, q)
	}
	model.SortQuarters(out)
	return out, nil
}

// LoadRawTables 读取全部季度原始表
func (s *Store) LoadRawTables() ([]*model.RawTable, error) {
	quarters, err := s.ListRawQuarters()
	if err != nil {
		return nil, err
	}
	tables := make([]*model.RawTable, 0, len(quarters))
	for _, q := range quarters {
		t, err := s.ReadRaw(q)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// WriteOverview 写入指标总表（整体替换）
func (s *Store) WriteOverview(ov *model.OverviewTable) error {
	records := make([][]string, 0, len(ov.Quarters)+1)
	records = append(records, append([]string{"Quarter"}, ov.Entities...))
	for i, q := range ov.Quarters {
		rec := make([]string, 0, len(ov.Entities)+1)
		rec = append(rec, q.Date().Format(dateLayout))
		for j := range ov.Entities {
			v := model.Missing()
			if j < len(ov.Cells[i]) {
				v = ov.Cells[i][j]
			}
			rec = append(rec, v.String())
		}
		records = append(records, rec)
	}
	if err := writeCSVAtomic(s.overviewPath(ov.Level, ov.Metric), records); err != nil {
		return fmt.Errorf("write overview %s/%s: %w", ov.Level.Label(), ov.Metric, err)
	}
	if err := s.indexOverview(ov.Level, ov.Metric); err != nil {
		return fmt.Errorf("index overview %s/%s: %w", ov.Level.Label(), ov.Metric, err)
	}
	return nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.root, overviewDir, overviewIndex)
}

// readIndex 读取指标清单（不含表头），文件不存在视为空
func (s *Store) readIndex() ([][]string, error) {
	records, err := readCSV(s.indexPath())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return records[1:], nil
}

// indexOverview 记录指标真实名称，已存在则不改写
func (s *Store) indexOverview(level model.Level, metric string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readIndex()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == level.Label() && row[1] == metric {
			return nil
		}
	}
	rows = append(rows, []string{level.Label(), metric})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})
	return writeCSVAtomic(s.indexPath(), append([][]string{{"Level", "Metric"}}, rows...))
}

// ReadOverview 读取指标总表
func (s *Store) ReadOverview(level model.Level, metric string) (*model.OverviewTable, error) {
	records, err := readCSV(s.overviewPath(level, metric))
	if err != nil {
		return nil, err
	}
	entities := records[0][1:]
	ov := &model.OverviewTable{
		Level:    level,
		Metric:   metric,
		Entities: append([]string{}, entities...),
	}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		q, err := quarterFromDate(rec[0])
		if err != nil {
			return nil, err
		}
		cells := pad(rec[1:], len(entities))
		row := make([]model.Value, len(entities))
		for j, c := range cells {
			row[j] = model.ParseNumeric(c)
		}
		ov.Quarters = append(ov.Quarters, q)
		ov.Cells = append(ov.Cells, row)
	}
	return ov, nil
}

// ListOverviewMetrics 某层级已生成总表的指标真实名称（按名称排序）
// 清单中有记录但文件已被移除的指标不返回
func (s *Store) ListOverviewMetrics(level model.Level) ([]string, error) {
	s.mu.Lock()
	rows, err := s.readIndex()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list overview: %w", err)
	}

	var out []string
	for _, row := range rows {
		if len(row) < 2 || row[0] != level.Label() {
			continue
		}
		if _, err := os.Stat(s.overviewPath(level, row[1])); err != nil {
			continue
		}
		out = append(out, row[1])
	}
	sort.Strings(out)
	return out, nil
}

// WriteSeries 写入单实体序列（整体替换）
func (s *Store) WriteSeries(st *model.SeriesTable) error {
	header := make([]string, 0, len(st.Quarters)+1)
	header = append(header, "Metric")
	for _, q := range st.Quarters {
		header = append(header, q.Date().Format(dateLayout))
	}
	records := [][]string{header}
	for i, metric := range st.Metrics {
		rec := make([]string, 0, len(st.Quarters)+1)
		rec = append(rec, metric)
		for j := range st.Quarters {
			v := model.Missing()
			if j < len(st.Cells[i]) {
				v = st.Cells[i][j]
			}
			rec = append(rec, v.String())
		}
		records = append(records, rec)
	}
	if err := writeCSVAtomic(s.seriesPath(st.Level, st.Entity), records); err != nil {
		return fmt.Errorf("write series %s/%s: %w", st.Level.Name(), st.Entity, err)
	}
	return nil
}

// ReadSeries 读取单实体序列
func (s *Store) ReadSeries(level model.Level, entity string) (*model.SeriesTable, error) {
	records, err := readCSV(s.seriesPath(level, entity))
	if err != nil {
		return nil, err
	}
	st := &model.SeriesTable{Level: level, Entity: entity}
	for _, d := range records[0][1:] {
		q, err := quarterFromDate(d)
		if err != nil {
			return nil, err
		}
		st.Quarters = append(st.Quarters, q)
	}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := make([]model.Value, len(st.Quarters))
		for j, c := range pad(rec[1:], len(st.Quarters)) {
			row[j] = model.ParseValue(c)
		}
		st.Metrics = append(st.Metrics, rec[0])
		st.Cells = append(st.Cells, row)
	}
	return st, nil
}

func quarterFromDate(s string) (model.Quarter, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return model.Quarter{}, fmt.Errorf("invalid quarter date %q: %w", s, err)
	}
	return model.QuarterOf(t), nil
}
