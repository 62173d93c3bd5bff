package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents the create customer request body
type CreateCustomerRequest struct {
	Name       string  `json:"name"`
	NationalID string  `json:"nationalId"`
	Phone      *string `json:"phone,omitempty"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID         int32   `json:"id"`
	BranchID   int32   `json:"branchId"`
	Name       string  `json:"name"`
	NationalID string  `json:"nationalId"`
	Phone      *string `json:"phone,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func toCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         customer.ID,
		BranchID:   customer.BranchID,
		Name:       customer.Name,
		NationalID: customer.NationalID,
		Phone:      customer.Phone,
		CreatedAt:  customer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  customer.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateCustomer godoc
// @Summary Register a customer
// @Description Register a pledger at the branch. Idempotent on national ID.
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "Customer registration request"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} ProblemDetails
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	customer, err := h.customerService.CreateCustomer(branchID, service.CreateCustomerInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
	})
	if err != nil {
		if verr := mapCustomerValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to create customer")
		return NewInternalError(c, "Failed to create customer")
	}

	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// GetCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CustomerResponse
// @Router /customers [get]
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	customers, err := h.customerService.GetCustomers(branchID)
	if err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to get customers")
		return NewInternalError(c, "Failed to get customers")
	}

	responses := make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = toCustomerResponse(customer)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	customer, err := h.customerService.GetCustomerByID(branchID, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("customer_id", id).Msg("Failed to get customer")
		return NewInternalError(c, "Failed to get customer")
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body CreateCustomerRequest true "Customer update request"
// @Success 200 {object} CustomerResponse
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	customer, err := h.customerService.UpdateCustomer(branchID, int32(id), service.CreateCustomerInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		if verr := mapCustomerValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("customer_id", id).Msg("Failed to update customer")
		return NewInternalError(c, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func mapCustomerValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrCustomerNameEmpty) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrCustomerNameTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 200 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrCustomerNationalIDEmpty) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "nationalId", Message: "National ID is required"},
		})
	}
	return nil
}
