package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/dto"
	"github.com/devjsik/exchange_rate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankHandler handles HTTP requests for bank pricing profiles.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

// newBankHandler creates a new bankHandler.
func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers the public read route for bank profiles.
func registerBankRoutes(rg *gin.RouterGroup, bs portssvc.BankSvcFacade) {
	h := newBankHandler(bs)
	rg.GET("/banks", h.listBanks)
}

// registerBankAdminRoutes registers the authenticated write routes.
func registerBankAdminRoutes(rg *gin.RouterGroup, bs portssvc.BankSvcFacade) {
	h := newBankHandler(bs)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.PUT("/:code", h.updateBank)
	}
}

// listBanks godoc
// @Summary List active bank pricing profiles
// @Tags banks
// @Produce json
// @Success 200 {array} dto.BankResponse
// @Router /banks [get]
func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.bankService.ListActiveBanks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankResponse(banks))
}

// createBank godoc
// @Summary Create a bank pricing profile
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateBankRequest true "Bank profile"
// @Success 201 {object} dto.BankResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Bank code already exists"
// @Security BearerAuth
// @Router /admin/banks [post]
func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bank create", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Bank code already exists"})
		default:
			logger.Error("Failed to create bank", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

// updateBank godoc
// @Summary Update a bank pricing profile
// @Tags admin
// @Accept json
// @Produce json
// @Param code path string true "Bank code"
// @Param request body dto.UpdateBankRequest true "Fields to update"
// @Success 200 {object} dto.BankResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Bank not found"
// @Security BearerAuth
// @Router /admin/banks/{code} [put]
func (h *bankHandler) updateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bank update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.UpdateBank(c.Request.Context(), code, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		default:
			logger.Error("Failed to update bank", slog.String("code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}
