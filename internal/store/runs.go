package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// 批次状态
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run 处理批次记录
type Run struct {
	ID               string     `json:"id"`
	SkipFetch        bool       `json:"skipFetch"`
	Status           string     `json:"status"`
	QuartersTotal    int        `json:"quartersTotal"`
	QuartersImported int        `json:"quartersImported"`
	QuartersSkipped  int        `json:"quartersSkipped"`
	OverviewTables   int        `json:"overviewTables"`
	SeriesTables     int        `json:"seriesTables"`
	ErrorMessage     string     `json:"errorMessage,omitempty"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// CreateRun 创建处理批次
func (s *Store) CreateRun(id string, skipFetch bool, startedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO pipeline_runs (id, skip_fetch, status, started_at)
		VALUES (?, ?, ?, ?)
	`, id, skipFetch, RunStatusRunning, startedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun 完成批次记录
func (s *Store) CompleteRun(run Run, completedAt time.Time) error {
	_, err := s.db.Exec(`
		UPDATE pipeline_runs SET
			status = ?,
			quarters_total = ?,
			quarters_imported = ?,
			quarters_skipped = ?,
			overview_tables = ?,
			series_tables = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, run.Status, run.QuartersTotal, run.QuartersImported, run.QuartersSkipped,
		run.OverviewTables, run.SeriesTables, run.ErrorMessage, completedAt.UTC(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// LatestRun 最近一次批次；无记录时返回 nil
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, skip_fetch, status, quarters_total, quarters_imported, quarters_skipped,
			overview_tables, series_tables, error_message, started_at, completed_at
		FROM pipeline_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`)

	var (
		run       Run
		completed sql.NullTime
	)
	err := row.Scan(&run.ID, &run.SkipFetch, &run.Status, &run.QuartersTotal, &run.QuartersImported,
		&run.QuartersSkipped, &run.OverviewTables, &run.SeriesTables, &run.ErrorMessage,
		&run.StartedAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest run failed: %w", err)
	}
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	return &run, nil
}
