package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pranav-builds/jobtrackr/internal/auth"
	"github.com/pranav-builds/jobtrackr/internal/domain"
	"github.com/pranav-builds/jobtrackr/internal/dtos"
	"github.com/pranav-builds/jobtrackr/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
	Feed       *services.FeedService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService, feed *services.FeedService) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: j,
		Feed:       feed,
	}
}

// HealthCheck is the GET /health endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// board reads the board selector, defaulting to the one board almost
// everyone uses.
func board(c *gin.Context) string {
	if b := c.Query("board"); b != "" {
		return b
	}
	return services.DefaultBoard
}

// respondError maps service and domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var serr *domain.InvalidStatusError
	switch {
	case errors.As(err, &verr), errors.As(err, &serr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateJob):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ParseJob is the POST /jobs/extract endpoint: LLM prefill for the add-job
// form.
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extracted, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawContent)
	if errors.Is(err, services.ErrLLMDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	// json.RawMessage keeps the model's JSON from being re-escaped.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extracted),
	})
}

// CreateJob is the POST /jobs endpoint.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Create(c.Request.Context(), auth.OwnerID(c), board(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobs is the GET /jobs endpoint. Supports ?q= (substring search),
// ?fields= (comma list of company,role,location) and ?sort= (date|company).
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context(), auth.OwnerID(c), board(c))
	if err != nil {
		respondError(c, err)
		return
	}

	jobs = domain.Search(jobs, c.Query("q"), parseSearchFields(c.Query("fields")))
	if key := c.Query("sort"); key != "" {
		jobs = domain.SortBy(jobs, domain.SortKey(key))
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": domain.TotalCount(jobs)})
}

// GroupedJobs is the GET /jobs/grouped endpoint: the kanban board. All five
// status columns are always present. Search and sort apply before grouping.
func (h *JobHandler) GroupedJobs(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context(), auth.OwnerID(c), board(c))
	if err != nil {
		respondError(c, err)
		return
	}

	jobs = domain.Search(jobs, c.Query("q"), parseSearchFields(c.Query("fields")))
	if key := c.Query("sort"); key != "" {
		jobs = domain.SortBy(jobs, domain.SortKey(key))
	}

	c.JSON(http.StatusOK, gin.H{"groups": domain.GroupByStatus(jobs)})
}

// UpdateJob is the PUT /jobs/:id endpoint.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Update(c.Request.Context(), auth.OwnerID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ChangeStatus is the PATCH /jobs/:id/status endpoint. The response carries
// prompt_feedback when the client should ask for rejection feedback: the move
// landed on Rejected and the record has none yet.
func (h *JobHandler) ChangeStatus(c *gin.Context) {
	var req dtos.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.ChangeStatus(c.Request.Context(), auth.OwnerID(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job":             job,
		"prompt_feedback": job.Status == domain.StatusRejected && job.Feedback == nil,
	})
}

// AddTag is the POST /jobs/:id/tags endpoint.
func (h *JobHandler) AddTag(c *gin.Context) {
	var req dtos.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.AddTag(c.Request.Context(), auth.OwnerID(c), c.Param("id"), req.Tag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// RemoveTag is the DELETE /jobs/:id/tags/:tag endpoint.
func (h *JobHandler) RemoveTag(c *gin.Context) {
	job, err := h.JobService.RemoveTag(c.Request.Context(), auth.OwnerID(c), c.Param("id"), c.Param("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// SetFeedback is the POST /jobs/:id/feedback endpoint.
func (h *JobHandler) SetFeedback(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.SetFeedback(c.Request.Context(), auth.OwnerID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is the DELETE /jobs/:id endpoint. Deletion is permanent.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.Delete(c.Request.Context(), auth.OwnerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// JobEvents is the GET /jobs/:id/events endpoint: the status timeline.
func (h *JobHandler) JobEvents(c *gin.Context) {
	events, err := h.JobService.Events(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// WatchJobs is the GET /jobs/watch endpoint: a server-sent-event stream of
// collection changes. Clients re-fetch on each event and recompute their
// views from the fresh snapshot.
func (h *JobHandler) WatchJobs(c *gin.Context) {
	ownerID := auth.OwnerID(c)
	events, cancel := h.Feed.Subscribe(ownerID)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// parseSearchFields turns "company,role,location" into a field set. Unknown
// names are ignored; an empty result falls back to the default scope inside
// domain.Search.
func parseSearchFields(raw string) domain.SearchFields {
	var fields domain.SearchFields
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "company":
			fields |= domain.FieldCompany
		case "role":
			fields |= domain.FieldRole
		case "location":
			fields |= domain.FieldLocation
		}
	}
	return fields
}
