// internal/service/export_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/export"
	"github.com/scanplan/backend/internal/storage"
)

// exportObjectPrefix namespaces uploaded workbooks in the bucket.
const exportObjectPrefix = "exports/"

// ExportOptions selects what an async scan plan export renders.
type ExportOptions struct {
	Fields        []string `json:"fields"`
	GroupByMarket bool     `json:"group_by_market"`
}

// ExportService renders snapshot exports off the request path. A job
// takes a consistent snapshot of rows and summaries synchronously, then
// builds and writes the files in the background so store mutations are
// never blocked behind spreadsheet generation.
type ExportService struct {
	planner   *PlannerService
	outputDir string
	sink      storage.ObjectStorage // optional remote upload target

	mu   sync.RWMutex
	jobs map[string]*export.Job
}

func NewExportService(planner *PlannerService, outputDir string, sink storage.ObjectStorage) *ExportService {
	return &ExportService{
		planner:   planner,
		outputDir: outputDir,
		sink:      sink,
		jobs:      make(map[string]*export.Job),
	}
}

// StartScanPlanExport snapshots the current rows and kicks off workbook
// generation, returning the pending job immediately.
func (s *ExportService) StartScanPlanExport(ctx context.Context, opts ExportOptions) (export.Job, error) {
	rows := s.planner.Rows()
	summaries, err := s.planner.Summary(ctx)
	if err != nil {
		return export.Job{}, fmt.Errorf("snapshot summary: %w", err)
	}

	job := &export.Job{
		ID:        uuid.NewString(),
		Status:    export.JobPending,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	// Copy before the goroutine starts touching the stored record.
	snapshot := *job
	go s.run(job.ID, rows, summaries, opts)

	return snapshot, nil
}

// Job returns one export job by id.
func (s *ExportService) Job(id string) (export.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return export.Job{}, false
	}
	return *job, true
}

// Jobs lists all known export jobs, newest first.
func (s *ExportService) Jobs() []export.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]export.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// JobFile resolves a completed job's workbook to a local path. When the
// on-disk copy is gone but the job was uploaded, the file is pulled back
// from the storage sink.
func (s *ExportService) JobFile(ctx context.Context, id string) (string, error) {
	job, ok := s.Job(id)
	if !ok {
		return "", fmt.Errorf("export job %s not found", id)
	}
	if job.Status != export.JobCompleted {
		return "", fmt.Errorf("export job %s is %s", id, job.Status)
	}
	if _, err := os.Stat(job.File); err == nil {
		return job.File, nil
	}
	if s.sink == nil || job.ObjectKey == "" {
		return "", fmt.Errorf("export file for job %s is no longer available", id)
	}
	dest := filepath.Join(s.outputDir, filepath.Base(job.ObjectKey))
	if err := s.sink.DownloadObject(ctx, job.ObjectKey, dest); err != nil {
		return "", fmt.Errorf("restore export from storage: %w", err)
	}
	log.Info().Str("job_id", id).Str("file", dest).Msg("export: restored workbook from storage")
	return dest, nil
}

// RemoteExports lists the export objects uploaded to the storage sink.
// Without a sink there is nothing remote, so the list is empty.
func (s *ExportService) RemoteExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.sink == nil {
		return []storage.ObjectInfo{}, nil
	}
	return s.sink.ListObjects(ctx, exportObjectPrefix)
}

// WriteRowsCSV streams the current row snapshot as CSV, synchronously.
func (s *ExportService) WriteRowsCSV(w io.Writer) error {
	return export.WriteRowsCSV(w, s.planner.Rows())
}

// WriteSummaryCSV streams the current rollups as CSV, synchronously.
func (s *ExportService) WriteSummaryCSV(ctx context.Context, w io.Writer) error {
	summaries, err := s.planner.Summary(ctx)
	if err != nil {
		return err
	}
	return export.WriteSummaryCSV(w, summaries)
}

func (s *ExportService) run(jobID string, rows []domain.PlannerRow, summaries []domain.SummaryRow, opts ExportOptions) {
	s.setStatus(jobID, export.JobProcessing, "", "")

	stamp := time.Now().Format("20060102_150405")
	xlsxPath := filepath.Join(s.outputDir, fmt.Sprintf("scan_plan_%s.xlsx", stamp))
	csvPath := filepath.Join(s.outputDir, fmt.Sprintf("scan_plan_rows_%s.csv", stamp))

	// The workbook and the companion CSV render from the same snapshot,
	// so they can be written concurrently.
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		wb, err := export.BuildWorkbook(rows, summaries, export.FieldsByKey(opts.Fields), opts.GroupByMarket)
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		if err := wb.SaveAs(xlsxPath); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		return export.WriteRowsCSV(f, rows)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("job_id", jobID).Msg("export: job failed")
		s.setStatus(jobID, export.JobFailed, "", err.Error())
		return
	}

	objectKey := ""
	if s.sink != nil {
		data, err := os.ReadFile(xlsxPath)
		if err == nil {
			objectKey = exportObjectPrefix + filepath.Base(xlsxPath)
			err = s.sink.UploadObject(context.Background(), objectKey, data)
		}
		if err != nil {
			// Upload failure is not fatal: the file is on disk.
			log.Warn().Err(err).Str("job_id", jobID).Msg("export: upload failed")
			objectKey = ""
		}
	}

	s.completeJob(jobID, xlsxPath, objectKey)
	log.Info().Str("job_id", jobID).Str("file", xlsxPath).Msg("export: job completed")
}

func (s *ExportService) setStatus(jobID string, status export.JobStatus, file, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = status
	if file != "" {
		job.File = file
	}
	job.Error = errMsg
	if status == export.JobFailed {
		job.FinishedAt = time.Now()
	}
}

func (s *ExportService) completeJob(jobID, file, objectKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = export.JobCompleted
	job.File = file
	job.ObjectKey = objectKey
	job.FinishedAt = time.Now()
}
