package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/repository/storage"
)

const (
	maxPhotoSize = 10 * 1024 * 1024 // 10 MB

	thumbWidth   = 200
	displayWidth = 800
	jpegQuality  = 85

	presignedURLExpiry = 15 * time.Minute
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoService manages collateral photos: it validates uploads, produces
// thumb/display/original renditions and hands out presigned download URLs.
type PhotoService struct {
	storage   storage.PhotoRepository
	photoRepo domain.CollateralPhotoRepository
	loanRepo  domain.LoanRepository
}

func NewPhotoService(st storage.PhotoRepository, photoRepo domain.CollateralPhotoRepository, loanRepo domain.LoanRepository) *PhotoService {
	return &PhotoService{
		storage:   st,
		photoRepo: photoRepo,
		loanRepo:  loanRepo,
	}
}

// PhotoView is a photo record together with presigned URLs for each
// rendition. URLs expire; clients must not persist them.
type PhotoView struct {
	domain.CollateralPhoto
	ThumbURL    string `json:"thumbUrl"`
	DisplayURL  string `json:"displayUrl"`
	OriginalURL string `json:"originalUrl"`
}

// Upload stores a new collateral photo for a loan. The source image is
// re-encoded as JPEG in three sizes regardless of the upload format.
func (s *PhotoService) Upload(ctx context.Context, branchID int32, loanID int32, r io.Reader, label *string) (*domain.CollateralPhoto, error) {
	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, maxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > maxPhotoSize {
		return nil, domain.ErrPhotoTooLarge
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidPhoto
	}

	contentType := http.DetectContentType(data)
	if !allowedPhotoTypes[contentType] {
		return nil, domain.ErrUnsupportedPhoto
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.ErrInvalidPhoto
	}

	photoID := uuid.New()
	photo := &domain.CollateralPhoto{
		ID:           photoID,
		LoanID:       loan.ID,
		Label:        label,
		ThumbPath:    storage.ObjectPath(branchID, loan.ID, photoID, "thumb"),
		DisplayPath:  storage.ObjectPath(branchID, loan.ID, photoID, "display"),
		OriginalPath: storage.ObjectPath(branchID, loan.ID, photoID, "original"),
		ContentType:  "image/jpeg",
		SizeBytes:    int64(len(data)),
	}

	renditions := []struct {
		path string
		img  image.Image
	}{
		{photo.ThumbPath, resizeToWidth(src, thumbWidth)},
		{photo.DisplayPath, resizeToWidth(src, displayWidth)},
		{photo.OriginalPath, src},
	}

	for _, r := range renditions {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, r.img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
			return nil, fmt.Errorf("failed to encode photo rendition: %w", err)
		}
		if err := s.storage.Upload(ctx, r.path, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
			s.cleanupObjects(ctx, photo)
			return nil, err
		}
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		s.cleanupObjects(ctx, photo)
		return nil, err
	}

	return photo, nil
}

// GetByLoanID lists a loan's photos with fresh presigned URLs.
func (s *PhotoService) GetByLoanID(ctx context.Context, branchID int32, loanID int32) ([]*PhotoView, error) {
	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*PhotoView, 0, len(photos))
	for _, p := range photos {
		view := &PhotoView{CollateralPhoto: *p}
		if view.ThumbURL, err = s.storage.PresignURL(ctx, p.ThumbPath, presignedURLExpiry); err != nil {
			return nil, err
		}
		if view.DisplayURL, err = s.storage.PresignURL(ctx, p.DisplayPath, presignedURLExpiry); err != nil {
			return nil, err
		}
		if view.OriginalURL, err = s.storage.PresignURL(ctx, p.OriginalPath, presignedURLExpiry); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// Delete removes a photo record and its stored objects.
func (s *PhotoService) Delete(ctx context.Context, branchID int32, loanID int32, photoID uuid.UUID) error {
	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.LoanID != loan.ID {
		return domain.ErrPhotoNotFound
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}
	s.cleanupObjects(ctx, photo)
	return nil
}

func (s *PhotoService) cleanupObjects(ctx context.Context, photo *domain.CollateralPhoto) {
	for _, path := range []string{photo.ThumbPath, photo.DisplayPath, photo.OriginalPath} {
		if err := s.storage.Delete(ctx, path); err != nil {
			log.Warn().Err(err).Str("object", path).Msg("failed to delete photo object")
		}
	}
}

// resizeToWidth scales down preserving aspect ratio. Images already
// narrower than the target are left untouched.
func resizeToWidth(src image.Image, width int) image.Image {
	if src.Bounds().Dx() <= width {
		return src
	}
	return imaging.Resize(src, width, 0, imaging.Lanczos)
}
