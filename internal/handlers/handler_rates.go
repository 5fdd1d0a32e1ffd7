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

// rateHandler handles HTTP requests for exchange rates and conversions.
type rateHandler struct {
	rateService       portssvc.RateReaderSvc
	calculatorService portssvc.CalculatorSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateReaderSvc, cs portssvc.CalculatorSvcFacade) *rateHandler {
	return &rateHandler{
		rateService:       rs,
		calculatorService: cs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateReaderSvc, cs portssvc.CalculatorSvcFacade) {
	h := newRateHandler(rs, cs)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:currencyCode", h.getRateWithChange)
		rates.GET("/:currencyCode/history", h.getHistory)
	}
	rg.POST("/calculate", h.calculate)
}

// listRates godoc
// @Summary List current exchange rates
// @Description Returns the latest base rate for every supported currency
// @Tags rates
// @Produce json
// @Success 200 {array} dto.RateResponse
// @Failure 503 {object} map[string]string "Rate data unavailable"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.GetAllExchangeRates(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate data is not available yet"})
			return
		}
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateResponse(rates))
}

// getRateWithChange godoc
// @Summary Get one currency's rate with day-over-day change
// @Tags rates
// @Produce json
// @Param currencyCode path string true "Canonical currency code (e.g. USD)"
// @Success 200 {object} dto.RateWithChangeResponse
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 503 {object} map[string]string "Rate data unavailable"
// @Router /rates/{currencyCode} [get]
func (h *rateHandler) getRateWithChange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currencyCode")

	rate, err := h.rateService.GetRateWithChange(c.Request.Context(), currencyCode)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate data is not available yet"})
		default:
			logger.Error("Failed to get rate", slog.String("currency", currencyCode), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateWithChangeResponse(rate))
}

// getHistory godoc
// @Summary Get per-day historical rates for charting
// @Tags rates
// @Produce json
// @Param currencyCode path string true "Canonical currency code"
// @Param days query int false "Window size in days" default(30)
// @Success 200 {array} dto.HistoryEntryResponse
// @Failure 400 {object} map[string]string "Invalid currency or window"
// @Router /rates/{currencyCode}/history [get]
func (h *rateHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currencyCode")

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	entries, err := h.rateService.GetHistoricalRates(c.Request.Context(), currencyCode, days)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get history", slog.String("currency", currencyCode), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListHistoryResponse(entries))
}

// calculate godoc
// @Summary Calculate a bank-specific conversion
// @Description Applies the bank's spread, preferential discount and fees to the latest base rate
// @Tags rates
// @Accept json
// @Produce json
// @Param request body dto.CalculateRequest true "Conversion request"
// @Success 200 {object} dto.CalculateResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Rate data unavailable"
// @Router /calculate [post]
func (h *rateHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for calculate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.calculatorService.Calculate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate data is not available yet"})
		default:
			logger.Error("Failed to calculate conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate conversion"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCalculateResponse(req.CurrencyCode, result))
}
