package artifact

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// writeCSVAtomic 先写临时文件再重命名，避免中断时留下半个文件
func writeCSVAtomic(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("decode %s: missing header", filepath.Base(path))
	}
	return records, nil
}

// maxKeyBytes 文件名主体上限，留出前缀与摘要后缀的余量（常见文件系统上限 255 字节）
const maxKeyBytes = 180

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// fileKey 将实体名/指标名转为安全文件名
// 名称被替换或截断时追加完整名称的摘要，不同名称不会落到同一文件
func fileKey(name string) string {
	key := keyReplacer.Replace(name)
	if key == name && len(key) <= maxKeyBytes && key != "." && key != ".." {
		return key
	}
	sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[:8]
	return truncateBytes(key, maxKeyBytes) + "~" + sum
}

// truncateBytes 按字节截断但不切开 UTF-8 字符
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func pad(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
