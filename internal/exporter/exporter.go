package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"strokedash/internal/model"
)

// maxSheetNameLen excelize 工作表名称长度上限
const maxSheetNameLen = 31

// 工作表名称中不允许出现的字符
var invalidSheetChars = strings.NewReplacer(
	":", " ", `\`, " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// Exporter 概览工作簿导出器
type Exporter struct {
	progress func(ProgressEvent)
}

// NewExporter 创建导出器；progress 可为 nil
func NewExporter(progress func(ProgressEvent)) *Exporter {
	return &Exporter{progress: progress}
}

// WriteOverviewWorkbook 将概览表写入单个工作簿，每表一个 sheet
func WriteOverviewWorkbook(path string, tables []*model.OverviewTable) error {
	return NewExporter(nil).Write(path, tables)
}

// Write 生成工作簿并原子写入 path
func (e *Exporter) Write(path string, tables []*model.OverviewTable) error {
	f, err := e.Build(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}
	tmp := path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("保存工作簿失败: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("保存工作簿失败: %w", err)
	}
	reportProgress(e.progress, 100, "完成")
	return nil
}

// Build 在内存中生成工作簿
func (e *Exporter) Build(tables []*model.OverviewTable) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	used := make(map[string]bool)
	for i, ov := range tables {
		if ov == nil {
			continue
		}
		name := uniqueSheetName(SheetName(ov.Level, ov.Metric), used)

		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("创建 sheet %s 失败: %w", name, err)
		}
		if err := fillOverviewSheet(f, name, ov); err != nil {
			_ = f.Close()
			return nil, err
		}
		reportProgress(e.progress, (i+1)*100/len(tables)-1, name)
	}

	if len(used) == 0 {
		// 无数据时保留一个空表
		if err := f.SetSheetName(defaultSheet, "Overview"); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillOverviewSheet(f *excelize.File, sheet string, ov *model.OverviewTable) error {
	header := make([]interface{}, 0, len(ov.Entities)+1)
	header = append(header, "Quarter")
	for _, name := range ov.Entities {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("写入 %s 表头失败: %w", sheet, err)
	}

	for qi, q := range ov.Quarters {
		row := make([]interface{}, 0, len(ov.Entities)+1)
		row = append(row, q.Date().Format("2006-01-02"))
		for ei := range ov.Entities {
			v := ov.Cells[qi][ei]
			if v.IsMissing() {
				row = append(row, nil)
				continue
			}
			row = append(row, v.Number)
		}
		cell, err := excelize.CoordinatesToCellName(1, qi+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("写入 %s 第 %d 行失败: %w", sheet, qi+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// SheetName 概览表对应的 sheet 名称
func SheetName(level model.Level, metric string) string {
	name := invalidSheetChars.Replace(level.Label() + "-" + strings.TrimSpace(metric))
	name = strings.Trim(name, "' ")
	return truncateRunes(name, maxSheetNameLen)
}

func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheetNameLen-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
