package api

import (
	"net/http"
	"time"

	"aqualeaf/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SystemLogs returns filtered audit records for operational forensics.
func (h *HTTPHandler) SystemLogs(c *gin.Context) {
	var query entity.SystemLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	logs, err := h.audit.Query(c.Request.Context(), &query)
	if err != nil {
		logrus.WithError(err).Error("failed to query system logs")
		InternalError(c, "failed to load system logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Statistics returns the admin dashboard summary.
func (h *HTTPHandler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()

	totalFarms, err := h.repo.CountFarms(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count farms")
		InternalError(c, "failed to load statistics")
		return
	}
	totalScans, err := h.repo.CountScans(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count scans")
		InternalError(c, "failed to load statistics")
		return
	}
	scansToday, err := h.repo.CountScansOn(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Error("failed to count today's scans")
		InternalError(c, "failed to load statistics")
		return
	}
	monthly, err := h.repo.MonthlyScanTotals(ctx, 6)
	if err != nil {
		logrus.WithError(err).Error("failed to aggregate monthly scans")
		InternalError(c, "failed to load statistics")
		return
	}

	c.JSON(http.StatusOK, entity.StatisticsResponse{
		TotalFarms:       totalFarms,
		TotalScans:       totalScans,
		ScansToday:       scansToday,
		MonthlyScanStats: monthly,
	})
}

// ListSpecies returns the seaweed species reference list.
func (h *HTTPHandler) ListSpecies(c *gin.Context) {
	species, err := h.repo.ListSpecies(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list species")
		InternalError(c, "failed to load species")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": species})
}
