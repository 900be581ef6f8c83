// internal/export/job.go
package export

import "time"

// JobStatus tracks an async export through its lifecycle.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job is one async spreadsheet export. Exports run off the request
// goroutine so store mutations are never blocked; the job record is how
// callers poll for the result.
type Job struct {
	ID         string    `json:"id"`
	Status     JobStatus `json:"status"`
	File       string    `json:"file,omitempty"`       // local path once completed
	ObjectKey  string    `json:"object_key,omitempty"` // remote key when uploaded
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}
