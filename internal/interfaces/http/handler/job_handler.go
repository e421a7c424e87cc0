package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jobapp "github.com/Aixtrade/Tally/internal/application/job"
	"github.com/Aixtrade/Tally/internal/interfaces/http/dto"
)

type JobHandler struct {
	service *jobapp.Service
}

func NewJobHandler(service *jobapp.Service) *JobHandler {
	return &JobHandler{
		service: service,
	}
}

// Create enqueues an asynchronous aggregation.
// POST /api/v1/data/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.EnqueueJob(c.Request.Context(), &jobapp.EnqueueJobCommand{
		Data:  req.Data,
		Queue: req.Queue,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.CreateJobResponse{
		JobID:  result.JobID,
		Queue:  result.Queue,
		Status: result.Status,
	})
}

// GET /api/v1/data/jobs/:id?queue=default
func (h *JobHandler) Get(c *gin.Context) {
	info, err := h.service.GetJob(c.Request.Context(), &jobapp.GetJobQuery{
		JobID: c.Param("id"),
		Queue: c.DefaultQuery("queue", "default"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.JobResponse{
		ID:          info.ID,
		Queue:       info.Queue,
		Type:        info.Type,
		State:       info.State,
		MaxRetry:    info.MaxRetry,
		Retried:     info.Retried,
		LastErr:     info.LastErr,
		CompletedAt: info.CompletedAt,
	}
	if info.Result != nil {
		resp.Result = &dto.AggregateResponse{
			StringLen: info.Result.StringLen,
			IntSum:    info.Result.IntSum,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// POST /api/v1/data/jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	jobID := c.Param("id")
	if err := h.service.CancelJob(c.Request.Context(), &jobapp.CancelJobCommand{JobID: jobID}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "status": "cancel_requested"})
}

// DELETE /api/v1/data/jobs/:id?queue=default
func (h *JobHandler) Delete(c *gin.Context) {
	jobID := c.Param("id")
	err := h.service.DeleteJob(c.Request.Context(), &jobapp.DeleteJobCommand{
		JobID: jobID,
		Queue: c.DefaultQuery("queue", "default"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "status": "deleted"})
}

// GET /api/v1/queues/stats?queue=
func (h *JobHandler) GetQueueStats(c *gin.Context) {
	stats, err := h.service.GetQueueStats(c.Request.Context(), &jobapp.GetQueueStatsQuery{
		Queue: c.Query("queue"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.QueueStatsResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, dto.QueueStatsResponse{
			Queue:     s.Queue,
			Pending:   s.Pending,
			Active:    s.Active,
			Scheduled: s.Scheduled,
			Retry:     s.Retry,
			Archived:  s.Archived,
			Completed: s.Completed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"queues": resp})
}
