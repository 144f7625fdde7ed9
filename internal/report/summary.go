package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/educacion-app/frontend-smoke/internal/smoke"
)

// Summary is the outcome of one suite run.
type Summary struct {
	RunID       string         `json:"run_id"`
	BaseURL     string         `json:"base_url"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Total       int            `json:"total"`
	Passed      int            `json:"passed"`
	Failed      int            `json:"failed"`
	SuccessRate float64        `json:"success_rate"`
	Results     []smoke.Result `json:"results"`
}

// Summarize tallies results.
func Summarize(baseURL string, started, finished time.Time, results []smoke.Result) Summary {
	s := Summary{
		RunID:      uuid.NewString(),
		BaseURL:    baseURL,
		StartedAt:  started,
		FinishedAt: finished,
		Total:      len(results),
		Results:    results,
	}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}

// FailedResults returns the failing results in execution order.
func (s Summary) FailedResults() []smoke.Result {
	var failed []smoke.Result
	for _, r := range s.Results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// ExitCode is 0 when every result passed and 1 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// SaveJSON writes the summary as indented JSON, creating parent directories.
func SaveJSON(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
