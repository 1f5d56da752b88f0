// Package ports defines the boundary interfaces the application core
// depends on. Adapters implement them; the core never imports adapters.
package ports

import (
	"context"

	"gorelate/domain/assoc"
	"gorelate/domain/table"
)

// SubmitRequest is the submission input of the analysis boundary.
type SubmitRequest struct {
	Data            []table.Row `json:"data"`
	SelectedColumns []string    `json:"selected_columns"`
}

// Status is the normalized state of an analysis response.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
	StatusProcessing Status = "processing"
)

// Response is the normalized analysis-service response, covering both
// synchronous results and job-based progress reports.
type Response struct {
	Status         Status        `json:"status"`
	TaskID         string        `json:"task_id,omitempty"`
	Message        string        `json:"message,omitempty"`
	Progress       float64       `json:"progress,omitempty"`
	StepsCompleted []string      `json:"steps_completed,omitempty"`
	ETA            float64       `json:"eta,omitempty"`
	Results        *assoc.Result `json:"results,omitempty"`
}

// ProgressFunc receives intermediate progress reports while an analysis is
// in flight. It is optional; implementations must accept nil.
type ProgressFunc func(progress float64, stepsCompleted []string, etaSeconds float64)

// Analyzer is the analysis boundary. Analyze blocks until the service
// reaches a terminal state and returns the result as one atomic snapshot;
// the caller never observes partial results. Submission retry and status
// polling are the implementation's concern.
type Analyzer interface {
	Analyze(ctx context.Context, req SubmitRequest, onProgress ProgressFunc) (*assoc.Result, error)
}
