package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles collateral photo HTTP requests
type PhotoHandler struct {
	photoService *service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// PhotoResponse represents a collateral photo in API responses. URLs are
// presigned and short-lived.
type PhotoResponse struct {
	ID          string  `json:"id"`
	LoanID      int32   `json:"loanId"`
	Label       *string `json:"label,omitempty"`
	ContentType string  `json:"contentType"`
	SizeBytes   int64   `json:"sizeBytes"`
	ThumbURL    string  `json:"thumbUrl,omitempty"`
	DisplayURL  string  `json:"displayUrl,omitempty"`
	OriginalURL string  `json:"originalUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toPhotoResponse(photo *domain.CollateralPhoto) PhotoResponse {
	return PhotoResponse{
		ID:          photo.ID.String(),
		LoanID:      photo.LoanID,
		Label:       photo.Label,
		ContentType: photo.ContentType,
		SizeBytes:   photo.SizeBytes,
		CreatedAt:   photo.CreatedAt.Format(time.RFC3339),
	}
}

func toPhotoViewResponse(view *service.PhotoView) PhotoResponse {
	resp := toPhotoResponse(&view.CollateralPhoto)
	resp.ThumbURL = view.ThumbURL
	resp.DisplayURL = view.DisplayURL
	resp.OriginalURL = view.OriginalURL
	return resp
}

// UploadPhoto godoc
// @Summary Upload a collateral photo
// @Description Upload a photo of the pledged collateral; thumbnail and display renditions are generated
// @Tags photos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param photo formData file true "Photo file (JPEG, PNG or WebP, max 10 MB)"
// @Param label formData string false "Photo label"
// @Success 201 {object} PhotoResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/photos [post]
func (h *PhotoHandler) UploadPhoto(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return NewValidationError(c, "Photo file is required", []ValidationError{
			{Field: "photo", Message: "A multipart file named photo is required"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to open uploaded photo")
		return NewInternalError(c, "Failed to read photo")
	}
	defer file.Close()

	var label *string
	if v := c.FormValue("label"); v != "" {
		label = &v
	}

	photo, err := h.photoService.Upload(c.Request().Context(), branchID, int32(loanID), file, label)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return NewNotFoundError(c, "Loan not found")
		case errors.Is(err, domain.ErrPhotoTooLarge):
			return NewValidationError(c, "Photo too large", []ValidationError{
				{Field: "photo", Message: "Photo must be 10 MB or less"},
			})
		case errors.Is(err, domain.ErrUnsupportedPhoto):
			return NewValidationError(c, "Unsupported photo type", []ValidationError{
				{Field: "photo", Message: "Must be JPEG, PNG or WebP"},
			})
		case errors.Is(err, domain.ErrInvalidPhoto):
			return NewValidationError(c, "Invalid photo", []ValidationError{
				{Field: "photo", Message: "File is not a decodable image"},
			})
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", loanID).Msg("Failed to upload photo")
		return NewInternalError(c, "Failed to upload photo")
	}

	return c.JSON(http.StatusCreated, toPhotoResponse(photo))
}

// GetPhotos godoc
// @Summary List a loan's collateral photos
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {array} PhotoResponse
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/photos [get]
func (h *PhotoHandler) GetPhotos(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	views, err := h.photoService.GetByLoanID(c.Request().Context(), branchID, int32(loanID))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", loanID).Msg("Failed to get photos")
		return NewInternalError(c, "Failed to get photos")
	}

	responses := make([]PhotoResponse, len(views))
	for i, view := range views {
		responses[i] = toPhotoViewResponse(view)
	}

	return c.JSON(http.StatusOK, responses)
}

// DeletePhoto godoc
// @Summary Delete a collateral photo
// @Tags photos
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param photoId path string true "Photo ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /loans/{id}/photos/{photoId} [delete]
func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	branchID := middleware.GetBranchID(c)
	if branchID == 0 {
		return NewUnauthorizedError(c, "Branch required")
	}

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		return NewValidationError(c, "Invalid photo ID", nil)
	}

	if err := h.photoService.Delete(c.Request().Context(), branchID, int32(loanID), photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return NewNotFoundError(c, "Loan not found")
		case errors.Is(err, domain.ErrPhotoNotFound):
			return NewNotFoundError(c, "Photo not found")
		}
		log.Error().Err(err).Int32("branch_id", branchID).Int64("loan_id", loanID).Msg("Failed to delete photo")
		return NewInternalError(c, "Failed to delete photo")
	}

	return c.NoContent(http.StatusNoContent)
}
