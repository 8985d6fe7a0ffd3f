package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// CalendarHandler serves the dashboard calendar views: the month grid, the
// week strip, and the single-day list, each with the jobs falling inside.
type CalendarHandler struct {
	schedule *service.ScheduleService
}

// NewCalendarHandler creates a new calendar handler.
// Parameters:
//   - schedule: schedule service instance.
// Returns:
//   - *CalendarHandler: initialized handler.
func NewCalendarHandler(schedule *service.ScheduleService) *CalendarHandler {
	return &CalendarHandler{schedule: schedule}
}

// Month handles GET /api/v1/admin/calendar/month. The response is always
// the fixed 42-cell grid; jobs are grouped by date.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CalendarHandler) Month(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		return
	}

	cells := calendar.MonthGrid(ref)
	// The grid spills into neighboring months; fetch the full visible span.
	start := cells[0].Date
	end := cells[len(cells)-1].Date
	jobs, err := h.schedule.JobsBetween(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cells": cells,
		"jobs":  groupByDate(jobs),
	})
}

// Week handles GET /api/v1/admin/calendar/week.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CalendarHandler) Week(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		return
	}

	days := calendar.WeekDays(ref)
	start, end := calendar.Range(ref, calendar.GranularityWeek)
	jobs, err := h.schedule.JobsBetween(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days": days,
		"jobs": groupByDate(jobs),
	})
}

// Day handles GET /api/v1/admin/calendar/day.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CalendarHandler) Day(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		return
	}

	jobs, err := h.schedule.JobsOn(c.Request.Context(), ref)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date": ref,
		"jobs": jobs,
	})
}

// refDate parses the `date` query parameter, defaulting to today. It writes
// the error response itself on malformed input.
func refDate(c *gin.Context) (calendar.Date, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return calendar.Today(), true
	}
	ref, err := calendar.Parse(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return calendar.Date{}, false
	}
	return ref, true
}

// groupByDate buckets jobs under their effective date's string form.
func groupByDate(jobs []domain.Job) map[string][]domain.Job {
	grouped := make(map[string][]domain.Job)
	for _, job := range jobs {
		key := job.EffectiveDate().String()
		grouped[key] = append(grouped[key], job)
	}
	return grouped
}
