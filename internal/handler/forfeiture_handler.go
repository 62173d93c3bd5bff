package handler

import (
	"net/http"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ForfeitureHandler handles forfeiture monitoring HTTP requests
type ForfeitureHandler struct {
	forfeitureService *service.ForfeitureService
}

// NewForfeitureHandler creates a new ForfeitureHandler
func NewForfeitureHandler(forfeitureService *service.ForfeitureService) *ForfeitureHandler {
	return &ForfeitureHandler{forfeitureService: forfeitureService}
}

// LoanAtRiskResponse represents an overdue loan with its forfeiture countdown
type LoanAtRiskResponse struct {
	Loan                LoanResponse `json:"loan"`
	DaysPastDue         int          `json:"daysPastDue"`
	DaysUntilForfeiture int          `json:"daysUntilForfeiture"`
}

// ScanStatsResponse summarizes one forfeiture sweep
type ScanStatsResponse struct {
	Scanned   int `json:"scanned"`
	AtRisk    int `json:"atRisk"`
	Forfeited int `json:"forfeited"`
}

// GetAtRiskLoans godoc
// @Summary List loans at risk of forfeiture
// @Description Get the branch's overdue active loans with their countdown to forfeiture
// @Tags forfeiture
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LoanAtRiskResponse
// @Failure 401 {object} ProblemDetails
// @Router /loans/at-risk [get]
func (h *ForfeitureHandler) GetAtRiskLoans(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	atRisk, err := h.forfeitureService.GetAtRisk(branchID, util.DateOnly(time.Now()))
	if err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to get at-risk loans")
		return NewInternalError(c, "Failed to get at-risk loans")
	}

	responses := make([]LoanAtRiskResponse, len(atRisk))
	for i, entry := range atRisk {
		responses[i] = LoanAtRiskResponse{
			Loan:                toLoanResponse(entry.Loan),
			DaysPastDue:         entry.DaysPastDue,
			DaysUntilForfeiture: entry.DaysUntilForfeiture,
		}
	}

	return c.JSON(http.StatusOK, responses)
}

// TriggerScan godoc
// @Summary Run a forfeiture sweep now
// @Description Scan all active loans and forfeit those past the threshold, without waiting for the background worker
// @Tags forfeiture
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ScanStatsResponse
// @Failure 401 {object} ProblemDetails
// @Router /forfeiture/scan [post]
func (h *ForfeitureHandler) TriggerScan(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	stats, err := h.forfeitureService.ScanOnce(c.Request().Context(), util.DateOnly(time.Now()))
	if err != nil {
		log.Error().Err(err).Msg("Forfeiture sweep failed")
		return NewInternalError(c, "Forfeiture sweep failed")
	}

	return c.JSON(http.StatusOK, ScanStatsResponse{
		Scanned:   stats.Scanned,
		AtRisk:    stats.AtRisk,
		Forfeited: stats.Forfeited,
	})
}
