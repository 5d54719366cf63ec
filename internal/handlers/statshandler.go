package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-builds/jobtrackr/internal/auth"
	"github.com/pranav-builds/jobtrackr/internal/domain"
	"github.com/pranav-builds/jobtrackr/internal/services"
)

type StatsHandler struct {
	JobService *services.JobService
}

func NewStatsHandler(j *services.JobService) *StatsHandler {
	return &StatsHandler{JobService: j}
}

// Stats is the GET /stats endpoint: the dashboard numbers. Everything is
// recomputed from the current collection on each call; an empty collection
// is a valid all-zero result, not an error.
func (h *StatsHandler) Stats(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context(), auth.OwnerID(c), board(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        domain.TotalCount(jobs),
		"by_status":    domain.CountByStatus(jobs),
		"distribution": domain.Distribution(jobs),
	})
}
