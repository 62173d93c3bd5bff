package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ApplyPaymentRequest represents the apply payment request body. Amount is
// integer sen. Strategy is consulted only for a partial interest payment.
type ApplyPaymentRequest struct {
	Amount   int64   `json:"amount"`
	Strategy *string `json:"strategy,omitempty"`
	AsOf     *string `json:"asOf,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// RedeemRequest represents the redeem request body
type RedeemRequest struct {
	AsOf  *string `json:"asOf,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// PreviewPaymentRequest represents the preview request body
type PreviewPaymentRequest struct {
	Amount int64   `json:"amount"`
	AsOf   *string `json:"asOf,omitempty"`
}

// AllocationResponse represents an engine allocation in API responses
type AllocationResponse struct {
	Period              string `json:"period"`
	Strategy            string `json:"strategy,omitempty"`
	AppliedToFee        int64  `json:"appliedToFee"`
	AppliedToInterest   int64  `json:"appliedToInterest"`
	AppliedToPrincipal  int64  `json:"appliedToPrincipal"`
	Overpayment         int64  `json:"overpayment"`
	ObligationRemaining int64  `json:"obligationRemaining"`
	DaysCovered         int    `json:"daysCovered,omitempty"`
	IsFullPayment       bool   `json:"isFullPayment"`
	IsRedeemed          bool   `json:"isRedeemed"`
	NextPaymentDueDate  string `json:"nextPaymentDueDate"`
}

// PaymentResponse represents a stored payment in API responses
type PaymentResponse struct {
	ID                 int32   `json:"id"`
	LoanID             int32   `json:"loanId"`
	Amount             int64   `json:"amount"`
	AppliedToFee       int64   `json:"appliedToFee"`
	AppliedToInterest  int64   `json:"appliedToInterest"`
	AppliedToPrincipal int64   `json:"appliedToPrincipal"`
	Overpayment        int64   `json:"overpayment"`
	Period             string  `json:"period"`
	Strategy           string  `json:"strategy,omitempty"`
	PaidAt             string  `json:"paidAt"`
	ResultingDueDate   string  `json:"resultingDueDate"`
	Redeeming          bool    `json:"redeeming"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// PaymentResultResponse represents the outcome of a persisted payment
type PaymentResultResponse struct {
	Loan       LoanResponse       `json:"loan"`
	Payment    PaymentResponse    `json:"payment"`
	Allocation AllocationResponse `json:"allocation"`
}

// PreviewPaymentResponse represents both strategy outcomes for a candidate
// amount, computed without committing anything
type PreviewPaymentResponse struct {
	OptionNewCycle    AllocationResponse `json:"optionNewCycle"`
	OptionKeepDueDate AllocationResponse `json:"optionKeepDueDate"`
	CanPayFull        bool               `json:"canPayFull"`
	FullAmount        int64              `json:"fullAmount"`
}

func toAllocationResponse(applied pawn.AppliedPayment) AllocationResponse {
	return AllocationResponse{
		Period:              string(applied.Period),
		Strategy:            string(applied.Strategy),
		AppliedToFee:        applied.AppliedToFee,
		AppliedToInterest:   applied.AppliedToInterest,
		AppliedToPrincipal:  applied.AppliedToPrincipal,
		Overpayment:         applied.Overpayment,
		ObligationRemaining: applied.ObligationRemaining,
		DaysCovered:         applied.DaysCovered,
		IsFullPayment:       applied.IsFullPayment,
		IsRedeemed:          applied.IsRedeemed,
		NextPaymentDueDate:  applied.NextPaymentDueDate.Format("2006-01-02"),
	}
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 payment.ID,
		LoanID:             payment.LoanID,
		Amount:             payment.Amount,
		AppliedToFee:       payment.AppliedToFee,
		AppliedToInterest:  payment.AppliedToInterest,
		AppliedToPrincipal: payment.AppliedToPrincipal,
		Overpayment:        payment.Overpayment,
		Period:             string(payment.Period),
		Strategy:           string(payment.Strategy),
		PaidAt:             payment.PaidAt.Format("2006-01-02"),
		ResultingDueDate:   payment.ResultingDueDate.Format("2006-01-02"),
		Redeeming:          payment.Redeeming,
		Notes:              payment.Notes,
		CreatedAt:          payment.CreatedAt.Format(time.RFC3339),
	}
}

func toPaymentResultResponse(result *service.PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		Loan:       toLoanResponse(result.Loan),
		Payment:    toPaymentResponse(result.Payment),
		Allocation: toAllocationResponse(result.Allocation),
	}
}

// ApplyPayment godoc
// @Summary Apply a payment to a loan
// @Description Allocate a payment across the loan's obligations and persist the result
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body ApplyPaymentRequest true "Payment request"
// @Success 200 {object} PaymentResultResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /loans/{id}/payments [post]
func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req ApplyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	strategy := pawn.StrategyNone
	if req.Strategy != nil && *req.Strategy != "" {
		strategy = pawn.Strategy(*req.Strategy)
		if !strategy.Valid() {
			return NewValidationError(c, "Invalid strategy", []ValidationError{
				{Field: "strategy", Message: "Must be one of: new_cycle, keep_due_date"},
			})
		}
	}

	asOf, err := parseAsOf(derefString(req.AsOf))
	if err != nil {
		return NewValidationError(c, "Invalid asOf", []ValidationError{
			{Field: "asOf", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	input := service.ApplyPaymentInput{
		Amount:   req.Amount,
		Strategy: strategy,
		AsOf:     asOf,
		Notes:    req.Notes,
	}

	result, err := h.paymentService.ApplyPayment(c.Request().Context(), branchID, int32(loanID), input)
	if err != nil {
		return h.mapPaymentError(c, err, branchID, loanID, "Failed to apply payment")
	}

	return c.JSON(http.StatusOK, toPaymentResultResponse(result))
}

// PreviewPayment godoc
// @Summary Preview a partial payment
// @Description Run the allocator hypothetically for both strategies without committing
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body PreviewPaymentRequest true "Preview request"
// @Success 200 {object} PreviewPaymentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/payments/preview [post]
func (h *PaymentHandler) PreviewPayment(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req PreviewPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	asOf, err := parseAsOf(derefString(req.AsOf))
	if err != nil {
		return NewValidationError(c, "Invalid asOf", []ValidationError{
			{Field: "asOf", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	preview, err := h.paymentService.PreviewPayment(branchID, int32(loanID), req.Amount, asOf)
	if err != nil {
		return h.mapPaymentError(c, err, branchID, loanID, "Failed to preview payment")
	}

	return c.JSON(http.StatusOK, PreviewPaymentResponse{
		OptionNewCycle:    toAllocationResponse(preview.OptionNewCycle),
		OptionKeepDueDate: toAllocationResponse(preview.OptionKeepDueDate),
		CanPayFull:        preview.CanPayFull,
		FullAmount:        preview.FullAmount,
	})
}

// Redeem godoc
// @Summary Redeem a loan
// @Description Settle everything owed on the reference date and release the collateral
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body RedeemRequest true "Redeem request"
// @Success 200 {object} PaymentResultResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /loans/{id}/redeem [post]
func (h *PaymentHandler) Redeem(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req RedeemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	asOf, err := parseAsOf(derefString(req.AsOf))
	if err != nil {
		return NewValidationError(c, "Invalid asOf", []ValidationError{
			{Field: "asOf", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	result, err := h.paymentService.Redeem(c.Request().Context(), branchID, int32(loanID), asOf, req.Notes)
	if err != nil {
		return h.mapPaymentError(c, err, branchID, loanID, "Failed to redeem loan")
	}

	return c.JSON(http.StatusOK, toPaymentResultResponse(result))
}

// GetPayments godoc
// @Summary List a loan's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {array} PaymentResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/payments [get]
func (h *PaymentHandler) GetPayments(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	payments, err := h.paymentService.GetPaymentsByLoanID(branchID, int32(loanID))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", loanID).Msg("Failed to get payments")
		return NewInternalError(c, "Failed to get payments")
	}

	responses := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = toPaymentResponse(payment)
	}

	return c.JSON(http.StatusOK, responses)
}

// mapPaymentError translates engine and domain errors into problem
// responses. A stale snapshot maps to 409 so the client retries against the
// current state.
func (h *PaymentHandler) mapPaymentError(c echo.Context, err error, branchID int32, loanID int64, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return NewNotFoundError(c, "Loan not found")
	case errors.Is(err, domain.ErrLoanNotActive):
		return NewConflictError(c, "Loan is not active")
	case errors.Is(err, domain.ErrStaleSnapshot):
		return NewConflictError(c, "Loan was modified concurrently, retry with current state")
	case errors.Is(err, pawn.ErrAmountNotPositive):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, pawn.ErrStrategyRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "strategy", Message: "A strategy is required for a partial interest payment"},
		})
	case errors.Is(err, pawn.ErrUnknownStrategy), errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Invalid strategy", []ValidationError{
			{Field: "strategy", Message: "Must be one of: new_cycle, keep_due_date"},
		})
	}
	log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", loanID).Msg(logMsg)
	return NewInternalError(c, logMsg)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
