package store

import (
	"fmt"
	"time"
)

// 季度导入状态
const (
	QuarterImported = "imported"
	QuarterSkipped  = "skipped"
	QuarterError    = "error"
)

// QuarterImport 季度导入记录
type QuarterImport struct {
	Quarter      string        `json:"quarter"`
	RunID        string        `json:"runId"`
	Status       string        `json:"status"`
	Rows         int           `json:"rows"`
	Columns      int           `json:"columns"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	Duration     time.Duration `json:"duration"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// UpsertQuarterImport 记录季度最近一次导入结果
func (s *Store) UpsertQuarterImport(it QuarterImport) error {
	_, err := s.db.Exec(`
		INSERT INTO quarter_imports (quarter, run_id, status, row_count, column_count, error_message, duration_ms, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(quarter) DO UPDATE SET
			run_id = excluded.run_id,
			status = excluded.status,
			row_count = excluded.row_count,
			column_count = excluded.column_count,
			error_message = excluded.error_message,
			duration_ms = excluded.duration_ms,
			updated_at = CURRENT_TIMESTAMP
	`, it.Quarter, it.RunID, it.Status, it.Rows, it.Columns, it.ErrorMessage, it.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to upsert quarter import: %w", err)
	}
	return nil
}

// ListQuarterImports 全部季度导入记录，按季度标识索引
func (s *Store) ListQuarterImports() (map[string]QuarterImport, error) {
	rows, err := s.db.Query(`
		SELECT quarter, run_id, status, row_count, column_count, error_message, duration_ms, updated_at
		FROM quarter_imports
	`)
	if err != nil {
		return nil, fmt.Errorf("query quarter imports failed: %w", err)
	}
	defer rows.Close()

	out := make(map[string]QuarterImport)
	for rows.Next() {
		var (
			it         QuarterImport
			durationMS int64
		)
		if err := rows.Scan(&it.Quarter, &it.RunID, &it.Status, &it.Rows, &it.Columns,
			&it.ErrorMessage, &durationMS, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quarter imports failed: %w", err)
		}
		it.Duration = time.Duration(durationMS) * time.Millisecond
		out[it.Quarter] = it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quarter imports failed: %w", err)
	}
	return out, nil
}
