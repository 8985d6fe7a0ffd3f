package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/api/middleware"
	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// JobHandler handles scheduled job endpoints, including the live SSE feeds
// the dashboard calendar subscribes to.
type JobHandler struct {
	schedule *service.ScheduleService
}

// NewJobHandler creates a new job handler.
// Parameters:
//   - schedule: schedule service instance.
// Returns:
//   - *JobHandler: initialized handler.
func NewJobHandler(schedule *service.ScheduleService) *JobHandler {
	return &JobHandler{schedule: schedule}
}

// Create handles POST /api/v1/admin/jobs.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) Create(c *gin.Context) {
	var job domain.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job.CreatedBy = middleware.UserID(c)
	if err := h.schedule.CreateJob(c.Request.Context(), &job); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Update handles PUT /api/v1/admin/jobs/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) Update(c *gin.Context) {
	var job domain.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job.ID = c.Param("id")
	job.UpdatedBy = middleware.UserID(c)
	if err := h.schedule.UpdateJob(c.Request.Context(), &job); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /api/v1/admin/jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.schedule.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /api/v1/admin/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.schedule.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Toggle handles POST /api/v1/admin/jobs/:id/toggle.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) Toggle(c *gin.Context) {
	job, err := h.schedule.ToggleStatus(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// RemoveRecurrence handles DELETE /api/v1/admin/jobs/:id/recurrence.
// Pending generated instances are deleted; completed ones stay.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) RemoveRecurrence(c *gin.Context) {
	removed, err := h.schedule.RemoveRecurrence(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// List handles GET /api/v1/admin/jobs. A `date` query lists one day; a
// `start`/`end` pair lists a window.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *JobHandler) List(c *gin.Context) {
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := calendar.Parse(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		jobs, err := h.schedule.JobsOn(c.Request.Context(), date)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
		return
	}

	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}
	jobs, err := h.schedule.JobsBetween(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Watch handles GET /api/v1/admin/jobs/watch as a Server-Sent Events
// stream. Each event carries a full replacement snapshot for the watched
// day or window; the stream ends when the client disconnects.
// Parameters:
//   - c: Gin request context.
// Returns: none (streams SSE).
func (h *JobHandler) Watch(c *gin.Context) {
	ctx := c.Request.Context()
	updates := make(chan []domain.Job, 1)
	push := func(jobs []domain.Job) {
		// Keep only the newest snapshot; the stream loop may lag.
		for {
			select {
			case updates <- jobs:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	}

	var (
		sub interface{ Cancel() }
		err error
	)
	if dateStr := c.Query("date"); dateStr != "" {
		date, perr := calendar.Parse(dateStr)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		sub, err = h.schedule.WatchByDate(ctx, date, push)
	} else {
		start, end, ok := rangeQuery(c)
		if !ok {
			return
		}
		sub, err = h.schedule.WatchByRange(ctx, start, end, push)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case jobs := <-updates:
			c.SSEvent("jobs", jobs)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// rangeQuery parses the start/end window query parameters, writing the
// error response itself when they are missing or malformed.
func rangeQuery(c *gin.Context) (calendar.Date, calendar.Date, bool) {
	start, err1 := calendar.Parse(c.Query("start"))
	end, err2 := calendar.Parse(c.Query("end"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start and end query parameters are required as YYYY-MM-DD",
		})
		return calendar.Date{}, calendar.Date{}, false
	}
	return start, end, true
}
