package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadSheet 打开 xlsx 字节流并读取目标 Sheet 的全部行（原始单元格值）
func ReadSheet(data []byte, sheetName string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	recognition := NewSheetRecognizer(sheetName).Recognize(f.GetSheetList())
	if recognition.Confidence < 0.5 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(recognition.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", recognition.SheetName, err)
	}
	return rows, nil
}
