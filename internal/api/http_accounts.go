package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"aqualeaf/internal/account"
	"aqualeaf/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListFarmAccounts returns every farm account for the admin dashboard.
func (h *HTTPHandler) ListFarmAccounts(c *gin.Context) {
	accounts, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list farm accounts")
		InternalError(c, "failed to load farm accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// ChangeFarmStatus applies a suspend/reinstate/deactivate action.
func (h *HTTPHandler) ChangeFarmStatus(c *gin.Context) {
	claims := CurrentClaims(c)
	farmID, ok := parseFarmID(c)
	if !ok {
		return
	}

	var req entity.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	err := h.accounts.ChangeStatus(c.Request.Context(), claims.Email, farmID, req.Action)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Farm account " + req.Action + " success"})
	case errors.Is(err, account.ErrInvalidAction):
		BadRequest(c, ErrCodeInvalidAction, "Invalid action")
	case errors.Is(err, account.ErrNotFound):
		NotFound(c, ErrCodeAccountNotFound, "Farm account not found")
	default:
		logrus.WithError(err).WithField("farm_id", farmID).Error("failed to change farm status")
		InternalError(c, "failed to update farm account")
	}
}

// DeleteFarmAccount permanently erases a deactivated farm account.
func (h *HTTPHandler) DeleteFarmAccount(c *gin.Context) {
	claims := CurrentClaims(c)
	farmID, ok := parseFarmID(c)
	if !ok {
		return
	}

	err := h.accounts.HardDelete(c.Request.Context(), claims.Email, farmID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Farm account permanently deleted"})
	case errors.Is(err, account.ErrNotFound):
		NotFound(c, ErrCodeAccountNotFound, "Deactivated farm account not found or already deleted")
	default:
		logrus.WithError(err).WithField("farm_id", farmID).Error("failed to delete farm account")
		InternalError(c, "failed to delete farm account")
	}
}

func parseFarmID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid farm id")
		return 0, false
	}
	return uint(id), true
}
