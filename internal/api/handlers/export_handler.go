package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scanplan/backend/internal/export"
	"github.com/scanplan/backend/internal/service"
)

type ExportHandler struct {
	service *service.ExportService
}

func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// StartScanPlanExport kicks off an async workbook export and returns the
// job record for polling.
func (h *ExportHandler) StartScanPlanExport(c *gin.Context) {
	var opts service.ExportOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	job, err := h.service.StartScanPlanExport(c.Request.Context(), opts)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to start export")
		return
	}
	c.JSON(http.StatusAccepted, job)
}

func (h *ExportHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.service.Jobs()})
}

func (h *ExportHandler) GetJob(c *gin.Context) {
	job, ok := h.service.Job(c.Param("id"))
	if !ok {
		errorResponse(c, http.StatusNotFound, "export job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DownloadJobFile serves the finished workbook for a completed job,
// restoring it from remote storage if the local copy was cleaned up.
func (h *ExportHandler) DownloadJobFile(c *gin.Context) {
	job, ok := h.service.Job(c.Param("id"))
	if !ok {
		errorResponse(c, http.StatusNotFound, "export job not found")
		return
	}
	if job.Status != export.JobCompleted {
		errorResponse(c, http.StatusConflict, "export job is "+string(job.Status))
		return
	}

	path, err := h.service.JobFile(c.Request.Context(), job.ID)
	if err != nil {
		errorResponse(c, http.StatusNotFound, "export file not available")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ListExportFiles lists the workbooks uploaded to the storage backend.
func (h *ExportHandler) ListExportFiles(c *gin.Context) {
	files, err := h.service.RemoteExports(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list export files")
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// DownloadRowsCSV streams the current planner rows as a CSV attachment.
func (h *ExportHandler) DownloadRowsCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", attachment("scan_plan_rows"))
	if err := h.service.WriteRowsCSV(c.Writer); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to write csv")
	}
}

// DownloadSummaryCSV streams the market x brand rollups as a CSV attachment.
func (h *ExportHandler) DownloadSummaryCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", attachment("scan_plan_summary"))
	if err := h.service.WriteSummaryCSV(c.Request.Context(), c.Writer); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to write csv")
	}
}

func attachment(prefix string) string {
	return `attachment; filename="` + prefix + "_" + time.Now().Format("20060102") + `.csv"`
}
