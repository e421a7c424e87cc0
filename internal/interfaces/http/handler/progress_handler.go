package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/pkg/progress"
)

const maxStreamedJobs = 10

// ProgressReader reads job progress streams.
type ProgressReader interface {
	Subscribe(ctx context.Context, jobID string, startID string) <-chan progress.SubscribeResult
	GetHistory(ctx context.Context, jobID string, startID string, count int64) ([]progress.SubscribeResult, error)
	GetLatest(ctx context.Context, jobID string) (*progress.SubscribeResult, error)
}

type ProgressHandler struct {
	reader ProgressReader
	logger *zap.Logger
}

func NewProgressHandler(reader ProgressReader, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		reader: reader,
		logger: logger,
	}
}

// StreamProgress pushes job progress over SSE. The done event carries the result.
// GET /api/v1/data/jobs/:id/progress/stream
func (h *ProgressHandler) StreamProgress(c *gin.Context) {
	jobID := c.Param("id")

	// "$" reads only new messages, "0" replays from the start
	startID := c.DefaultQuery("start_id", "$")
	includeHistory := c.Query("history") == "true"

	h.logger.Info("SSE connection established",
		zap.String("job_id", jobID),
		zap.String("start_id", startID),
		zap.Bool("include_history", includeHistory),
	)

	setSSEHeaders(c)

	if includeHistory {
		h.sendHistory(c, jobID)
	}

	ctx := c.Request.Context()
	ch := h.reader.Subscribe(ctx, jobID, startID)

	c.Stream(func(w io.Writer) bool {
		select {
		case result, ok := <-ch:
			if !ok {
				return false
			}

			if result.Error != nil {
				h.writeSSEEvent(w, "error", gin.H{"message": result.Error.Error()})
				return false
			}

			if result.IsFinal {
				if result.Progress != nil {
					h.writeSSEEvent(w, "progress", result.Progress)
				}
				h.writeSSEEvent(w, "done", doneEvent(jobID, result))
				return false
			}

			h.writeSSEEvent(w, "progress", result.Progress)
			return true

		case <-ctx.Done():
			h.logger.Debug("SSE connection closed by client", zap.String("job_id", jobID))
			return false
		}
	})
}

func (h *ProgressHandler) sendHistory(c *gin.Context, jobID string) {
	history, err := h.reader.GetHistory(c.Request.Context(), jobID, "-", 0)
	if err != nil {
		h.logger.Warn("failed to get history",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return
	}

	for _, result := range history {
		if result.Progress != nil {
			h.writeSSEEvent(c.Writer, "history", result.Progress)
		}
	}
}

func (h *ProgressHandler) writeSSEEvent(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to marshal SSE data", zap.Error(err))
		return
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// GET /api/v1/data/jobs/:id/progress
func (h *ProgressHandler) GetLatestProgress(c *gin.Context) {
	jobID := c.Param("id")

	result, err := h.reader.GetLatest(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("failed to get progress", zap.String("job_id", jobID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get progress",
			"code":  "PROGRESS_FETCH_ERROR",
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no progress found for this job",
			"code":  "PROGRESS_NOT_FOUND",
		})
		return
	}

	resp := gin.H{
		"progress":  result.Progress,
		"is_final":  result.IsFinal,
		"stream_id": result.StreamID,
	}
	if result.IsFinal {
		resp["status"] = result.Status
		if result.Result != "" {
			resp["result"] = json.RawMessage(result.Result)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetProgressHistory returns up to 100 entries.
// GET /api/v1/data/jobs/:id/progress/history
func (h *ProgressHandler) GetProgressHistory(c *gin.Context) {
	jobID := c.Param("id")
	startID := c.DefaultQuery("start_id", "-")

	history, err := h.reader.GetHistory(c.Request.Context(), jobID, startID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get progress history",
			"code":  "PROGRESS_HISTORY_ERROR",
		})
		return
	}

	items := make([]gin.H, 0, len(history))
	for _, result := range history {
		item := gin.H{
			"stream_id": result.StreamID,
			"progress":  result.Progress,
			"is_final":  result.IsFinal,
		}
		if result.IsFinal {
			item["status"] = result.Status
			if result.Result != "" {
				item["result"] = json.RawMessage(result.Result)
			}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"count":   len(items),
		"history": items,
	})
}

// StreamMultipleProgress merges the streams of several jobs.
// GET /api/v1/progress/stream?job_ids=id1,id2
func (h *ProgressHandler) StreamMultipleProgress(c *gin.Context) {
	jobIDs := splitIDs(c.Query("job_ids"))
	if len(jobIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_ids is required", "code": "INVALID_REQUEST"})
		return
	}
	if len(jobIDs) > maxStreamedJobs {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("at most %d jobs can be streamed at once", maxStreamedJobs),
			"code":  "INVALID_REQUEST",
		})
		return
	}

	h.logger.Info("SSE multi-job connection established", zap.Strings("job_ids", jobIDs))
	setSSEHeaders(c)

	ctx := c.Request.Context()

	type taggedResult struct {
		JobID  string
		Result progress.SubscribeResult
	}
	merged := make(chan taggedResult, len(jobIDs)*10)

	for _, jobID := range jobIDs {
		jobID := jobID
		ch := h.reader.Subscribe(ctx, jobID, "$")
		go func() {
			for result := range ch {
				select {
				case merged <- taggedResult{JobID: jobID, Result: result}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	active := len(jobIDs)

	c.Stream(func(w io.Writer) bool {
		select {
		case tr := <-merged:
			result := tr.Result
			if result.Error != nil {
				h.writeSSEEvent(w, "error", gin.H{"job_id": tr.JobID, "message": result.Error.Error()})
				active--
				return active > 0
			}

			if result.IsFinal {
				h.writeSSEEvent(w, "done", doneEvent(tr.JobID, result))
				active--
				return active > 0
			}

			h.writeSSEEvent(w, "progress", gin.H{"job_id": tr.JobID, "progress": result.Progress})
			return true

		case <-ctx.Done():
			return false
		}
	})
}

func doneEvent(jobID string, result progress.SubscribeResult) gin.H {
	event := gin.H{
		"job_id": jobID,
		"status": result.Status,
	}
	if result.Result != "" {
		event["result"] = json.RawMessage(result.Result)
	}
	return event
}

func setSSEHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

func splitIDs(param string) []string {
	var ids []string
	for _, id := range strings.Split(param, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
