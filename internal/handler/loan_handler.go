package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LoanHandler handles pawn loan HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
	// forfeitureThresholdDays mirrors the branch policy from config; nil
	// disables the forfeiture countdown in payoff quotes.
	forfeitureThresholdDays *int
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService, forfeitureThresholdDays *int) *LoanHandler {
	return &LoanHandler{
		loanService:             loanService,
		forfeitureThresholdDays: forfeitureThresholdDays,
	}
}

// CreateLoanRequest represents the create loan request body. Monetary
// amounts are integer sen.
type CreateLoanRequest struct {
	CustomerID          int32   `json:"customerId"`
	TicketNo            string  `json:"ticketNo"`
	CollateralDesc      string  `json:"collateralDesc"`
	Principal           int64   `json:"principal"`
	MonthlyInterestRate string  `json:"monthlyInterestRate"`
	OnboardingFee       int64   `json:"onboardingFee"`
	StartDate           *string `json:"startDate,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID                  int32   `json:"id"`
	BranchID            int32   `json:"branchId"`
	CustomerID          int32   `json:"customerId"`
	TicketNo            string  `json:"ticketNo"`
	CollateralDesc      string  `json:"collateralDesc"`
	Status              string  `json:"status"`
	Principal           int64   `json:"principal"`
	PrincipalRemaining  int64   `json:"principalRemaining"`
	MonthlyInterestRate string  `json:"monthlyInterestRate"`
	OnboardingFee       int64   `json:"onboardingFee"`
	OnboardingFeePaid   bool    `json:"onboardingFeePaid"`
	StartDate           string  `json:"startDate"`
	TermEndDate         string  `json:"termEndDate"`
	NextPaymentDueDate  string  `json:"nextPaymentDueDate"`
	Version             int32   `json:"version"`
	Notes               *string `json:"notes,omitempty"`
	RedeemedAt          *string `json:"redeemedAt,omitempty"`
	ForfeitedAt         *string `json:"forfeitedAt,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// PayoffQuoteResponse represents a payoff quote in API responses
type PayoffQuoteResponse struct {
	Loan                LoanResponse `json:"loan"`
	AsOf                string       `json:"asOf"`
	Period              string       `json:"period"`
	LoanDay             int          `json:"loanDay"`
	FeeOwed             int64        `json:"feeOwed"`
	InterestOwed        int64        `json:"interestOwed"`
	PrincipalOwed       int64        `json:"principalOwed"`
	TotalOwed           int64        `json:"totalOwed"`
	DailyRate           int64        `json:"dailyRate"`
	InGracePeriod       bool         `json:"inGracePeriod"`
	DaysPastDue         int          `json:"daysPastDue"`
	DaysUntilForfeiture *int         `json:"daysUntilForfeiture,omitempty"`
}

func toLoanResponse(loan *domain.Loan) LoanResponse {
	resp := LoanResponse{
		ID:                  loan.ID,
		BranchID:            loan.BranchID,
		CustomerID:          loan.CustomerID,
		TicketNo:            loan.TicketNo,
		CollateralDesc:      loan.CollateralDesc,
		Status:              string(loan.Status),
		Principal:           loan.Snapshot.Principal,
		PrincipalRemaining:  loan.Snapshot.PrincipalRemaining,
		MonthlyInterestRate: loan.Snapshot.MonthlyInterestRate.String(),
		OnboardingFee:       loan.Snapshot.OnboardingFee,
		OnboardingFeePaid:   loan.Snapshot.OnboardingFeePaid,
		StartDate:           loan.Snapshot.StartDate.Format("2006-01-02"),
		TermEndDate:         loan.Snapshot.TermEndDate.Format("2006-01-02"),
		NextPaymentDueDate:  loan.Snapshot.NextPaymentDueDate.Format("2006-01-02"),
		Version:             loan.Version,
		Notes:               loan.Notes,
		CreatedAt:           loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           loan.UpdatedAt.Format(time.RFC3339),
	}
	if loan.RedeemedAt != nil {
		s := loan.RedeemedAt.Format(time.RFC3339)
		resp.RedeemedAt = &s
	}
	if loan.ForfeitedAt != nil {
		s := loan.ForfeitedAt.Format(time.RFC3339)
		resp.ForfeitedAt = &s
	}
	return resp
}

// CreateLoan godoc
// @Summary Create a pawn loan
// @Description Write a new pawn ticket for a customer's collateral
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLoanRequest true "Loan creation request"
// @Success 201 {object} LoanResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	var req CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.CustomerID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "customerId", Message: "Customer ID is required"},
		})
	}

	rate, err := decimal.NewFromString(req.MonthlyInterestRate)
	if err != nil {
		return NewValidationError(c, "Invalid monthlyInterestRate", []ValidationError{
			{Field: "monthlyInterestRate", Message: "Must be a valid decimal number"},
		})
	}

	// Start date defaults to today when omitted
	startDate := util.DateOnly(time.Now())
	if req.StartDate != nil && *req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return NewValidationError(c, "Invalid startDate", []ValidationError{
				{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		startDate = parsed
	}

	input := service.CreateLoanInput{
		CustomerID:          req.CustomerID,
		TicketNo:            req.TicketNo,
		CollateralDesc:      req.CollateralDesc,
		Principal:           req.Principal,
		MonthlyInterestRate: rate,
		OnboardingFee:       req.OnboardingFee,
		StartDate:           startDate,
		Notes:               req.Notes,
	}

	loan, err := h.loanService.CreateLoan(branchID, input)
	if err != nil {
		if errors.Is(err, domain.ErrLoanTicketNoEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "ticketNo", Message: "Ticket number is required"},
			})
		}
		if errors.Is(err, domain.ErrLoanTicketNoTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "ticketNo", Message: "Ticket number must be 40 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrLoanCollateralEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "collateralDesc", Message: "Collateral description is required"},
			})
		}
		if errors.Is(err, domain.ErrLoanPrincipalInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "principal", Message: "Principal must be positive"},
			})
		}
		if errors.Is(err, domain.ErrLoanInterestRateInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyInterestRate", Message: "Must be between 0 and 1"},
			})
		}
		if errors.Is(err, domain.ErrLoanFeeInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "onboardingFee", Message: "Onboarding fee must not be negative"},
			})
		}
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "customerId", Message: "Customer not found"},
			})
		}
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to create loan")
		return NewInternalError(c, "Failed to create loan")
	}

	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// GetLoans godoc
// @Summary List loans
// @Description Get all loans for the authenticated branch, optionally filtered by status
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (active, redeemed, forfeited)"
// @Success 200 {array} LoanResponse
// @Failure 401 {object} ProblemDetails
// @Router /loans [get]
func (h *LoanHandler) GetLoans(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	var loans []*domain.Loan
	var err error
	if status := c.QueryParam("status"); status != "" {
		s := domain.LoanStatus(status)
		if s != domain.LoanStatusActive && s != domain.LoanStatusRedeemed && s != domain.LoanStatusForfeited {
			return NewValidationError(c, "Invalid status", []ValidationError{
				{Field: "status", Message: "Must be one of: active, redeemed, forfeited"},
			})
		}
		loans, err = h.loanService.GetLoansByStatus(branchID, s)
	} else {
		loans, err = h.loanService.GetLoans(branchID)
	}
	if err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to get loans")
		return NewInternalError(c, "Failed to get loans")
	}

	responses := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = toLoanResponse(loan)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} LoanResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	loan, err := h.loanService.GetLoanByID(branchID, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", id).Msg("Failed to get loan")
		return NewInternalError(c, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// GetLoanByTicketNo godoc
// @Summary Look up a loan by ticket number
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param ticketNo path string true "Ticket number"
// @Success 200 {object} LoanResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/ticket/{ticketNo} [get]
func (h *LoanHandler) GetLoanByTicketNo(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	ticketNo := c.Param("ticketNo")
	if ticketNo == "" {
		return NewValidationError(c, "Ticket number is required", nil)
	}

	loan, err := h.loanService.GetLoanByTicketNo(branchID, ticketNo)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Str("ticket_no", ticketNo).Msg("Failed to get loan by ticket")
		return NewInternalError(c, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// GetPayoffQuote godoc
// @Summary Quote a loan payoff
// @Description Compute what the loan owes on a reference date, broken into fee, interest and principal
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param asOf query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} PayoffQuoteResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /loans/{id}/payoff [get]
func (h *LoanHandler) GetPayoffQuote(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	asOf, err := parseAsOf(c.QueryParam("asOf"))
	if err != nil {
		return NewValidationError(c, "Invalid asOf", []ValidationError{
			{Field: "asOf", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	quote, err := h.loanService.QuotePayoff(branchID, int32(id), asOf, h.forfeitureThresholdDays)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		if errors.Is(err, domain.ErrLoanNotActive) {
			return NewConflictError(c, "Loan is not active")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", id).Msg("Failed to quote payoff")
		return NewInternalError(c, "Failed to quote payoff")
	}

	return c.JSON(http.StatusOK, toPayoffQuoteResponse(quote))
}

func toPayoffQuoteResponse(quote *service.PayoffQuote) PayoffQuoteResponse {
	return PayoffQuoteResponse{
		Loan:                toLoanResponse(quote.Loan),
		AsOf:                quote.AsOf.Format("2006-01-02"),
		Period:              string(quote.State.Period),
		LoanDay:             quote.State.LoanDay,
		FeeOwed:             quote.State.FeeOwed,
		InterestOwed:        quote.State.InterestOwed,
		PrincipalOwed:       quote.State.PrincipalOwed,
		TotalOwed:           quote.State.TotalOwed,
		DailyRate:           quote.State.DailyRate,
		InGracePeriod:       quote.State.InGracePeriod,
		DaysPastDue:         quote.State.DaysPastDue,
		DaysUntilForfeiture: quote.State.DaysUntilForfeiture,
	}
}

// parseAsOf parses an optional reference date query parameter, defaulting
// to today.
func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return util.DateOnly(time.Now()), nil
	}
	return time.Parse("2006-01-02", raw)
}
