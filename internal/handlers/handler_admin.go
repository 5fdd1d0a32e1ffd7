package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/dto"
	"github.com/devjsik/exchange_rate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes operator-triggered ingestion operations. These mirror
// what the scheduler does on its own but let an operator force a run without
// waiting for the next slot.
type adminHandler struct {
	rateService     portssvc.RateSvcFacade
	historyService  portssvc.HistorySvcFacade
	backfillService portssvc.BackfillSvcFacade
}

func newAdminHandler(rs portssvc.RateSvcFacade, hs portssvc.HistorySvcFacade, bf portssvc.BackfillSvcFacade) *adminHandler {
	return &adminHandler{
		rateService:     rs,
		historyService:  hs,
		backfillService: bf,
	}
}

// registerAdminRoutes registers operator routes under the authenticated group.
func registerAdminRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade, hs portssvc.HistorySvcFacade, bf portssvc.BackfillSvcFacade) {
	h := newAdminHandler(rs, hs, bf)

	rg.POST("/rates/refresh", h.refreshRates)
	rg.POST("/history/expand", h.expandHistory)
	rg.POST("/history/reinitialize", h.reinitializeHistory)
}

// refreshRates godoc
// @Summary Force an immediate rate refresh and history snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Upstream source unavailable"
// @Security BearerAuth
// @Router /admin/rates/refresh [post]
func (h *adminHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateService.RefreshRates(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrSourceUnavailable) || errors.Is(err, apperrors.ErrSourceRejected) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Forced refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		return
	}

	if err := h.historyService.SnapshotToday(c.Request.Context()); err != nil {
		logger.Error("History snapshot failed after forced refresh", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh succeeded but snapshot failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// expandHistory godoc
// @Summary Expand the history ledger to a deeper window
// @Tags admin
// @Produce json
// @Param targetDays query int true "Target depth in days (90, 180 or 365)"
// @Success 200 {object} dto.BackfillResponse
// @Failure 400 {object} map[string]string "Invalid target"
// @Security BearerAuth
// @Router /admin/history/expand [post]
func (h *adminHandler) expandHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetDays, err := strconv.Atoi(c.Query("targetDays"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetDays must be an integer"})
		return
	}

	result, err := h.backfillService.Expand(c.Request.Context(), targetDays)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("History expansion failed", slog.Int("targetDays", targetDays), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Expansion failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBackfillResponse(result))
}

// reinitializeHistory godoc
// @Summary Wipe and rebuild the history ledger
// @Description Destructive recovery operation: deletes all history rows then reseeds the initial window
// @Tags admin
// @Produce json
// @Success 200 {object} dto.BackfillResponse
// @Security BearerAuth
// @Router /admin/history/reinitialize [post]
func (h *adminHandler) reinitializeHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.backfillService.ForceReinitialize(c.Request.Context())
	if err != nil {
		logger.Error("History reinitialization failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reinitialization failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBackfillResponse(result))
}
