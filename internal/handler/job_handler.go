package handler

import (
	"log"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"imidok/internal/domain"
	"imidok/internal/port"
)

// JobHandler handles extraction job history endpoints.
type JobHandler struct {
	jobs    port.JobRepository
	storage port.ObjectStorage
	// presignExpiry in seconds for artifact download links.
	presignExpiry int64
}

// NewJobHandler creates a new JobHandler. storage may be nil when artifact
// archiving is disabled.
func NewJobHandler(jobs port.JobRepository, storage port.ObjectStorage, presignExpiry int64) *JobHandler {
	return &JobHandler{jobs: jobs, storage: storage, presignExpiry: presignExpiry}
}

// List handles GET /api/v1/jobs
// @Summary List extraction jobs
// @Tags jobs
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} APIResponse
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	jobs, total, err := h.jobs.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/jobs/:id
// @Summary Get one extraction job with its per-document outcomes
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}

	ctx := c.Request.Context()
	job, err := h.jobs.GetJob(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	items, err := h.jobs.ListJobItems(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	data := gin.H{"job": job, "items": items}
	if h.storage != nil && job.ArtifactKey != "" {
		if url, err := h.storage.GetPresignedURL(ctx, job.ArtifactKey, h.presignExpiry); err == nil {
			data["artifact_url"] = url
		}
	}
	RespondOK(c, data)
}

// DownloadArtifact handles GET /api/v1/jobs/:id/artifact
// @Summary Download the archived export of a job
// @Tags jobs
// @Produce application/octet-stream
// @Param id path string true "Job ID"
// @Success 200 {file} binary
// @Failure 404 {object} APIResponse "Job unknown or no artifact archived"
// @Router /jobs/{id}/artifact [get]
func (h *JobHandler) DownloadArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}

	ctx := c.Request.Context()
	job, err := h.jobs.GetJob(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if h.storage == nil || job.ArtifactKey == "" {
		HandleError(c, domain.ErrNotFound)
		return
	}

	data, err := h.storage.Download(ctx, job.ArtifactKey)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := path.Base(job.ArtifactKey)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, artifactContentType(filename), data)
}

// Delete handles DELETE /api/v1/jobs/:id
// @Summary Delete a job, its per-document outcomes, and its archived artifact
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}

	ctx := c.Request.Context()
	job, err := h.jobs.GetJob(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	// The artifact goes first; a storage failure leaves the job row behind
	// so the delete can be retried.
	if h.storage != nil && job.ArtifactKey != "" {
		if err := h.storage.Delete(ctx, job.ArtifactKey); err != nil {
			log.Printf("jobHandler: delete artifact %s: %v", job.ArtifactKey, err)
			HandleError(c, err)
			return
		}
	}

	if err := h.jobs.DeleteJob(ctx, id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func artifactContentType(filename string) string {
	switch path.Ext(filename) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".zip":
		return "application/zip"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}
