package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// tokenPrefix is the prefix for all API tokens
	tokenPrefix = "gdi_"
	// tokenRandomBytes is the number of random bytes for the token (32 bytes = 256 bits)
	tokenRandomBytes = 32
	// tokenPrefixLength is the length of the displayable prefix (e.g., "gdi_abc...")
	tokenPrefixLength = 8
	// maxTokensPerBranch is the maximum number of active tokens per branch
	maxTokensPerBranch = 10
)

// APITokenService handles API token business logic
type APITokenService struct {
	repo domain.APITokenRepository
}

// NewAPITokenService creates a new APITokenService
func NewAPITokenService(repo domain.APITokenRepository) *APITokenService {
	return &APITokenService{repo: repo}
}

// CreatedAPIToken includes the full token for one-time display.
type CreatedAPIToken struct {
	Token   *domain.APIToken
	Full    string
	Warning string
}

// Create creates a new API token and returns the full token (shown only once)
func (s *APITokenService) Create(ctx context.Context, userID uuid.UUID, branchID int32, description string) (*CreatedAPIToken, error) {
	existingTokens, err := s.repo.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if len(existingTokens) >= maxTokensPerBranch {
		return nil, domain.ErrTooManyAPITokens
	}

	rawToken, err := generateSecureToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate secure token")
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	fullToken := tokenPrefix + rawToken
	displayPrefix := tokenPrefix + rawToken[:tokenPrefixLength] + "..."

	token := &domain.APIToken{
		UserID:      userID,
		BranchID:    branchID,
		Description: description,
		TokenHash:   hashToken(fullToken),
		TokenPrefix: displayPrefix,
	}

	if err := s.repo.Create(ctx, token); err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to create API token")
		return nil, err
	}

	log.Info().
		Str("token_id", token.ID.String()).
		Int32("branch_id", branchID).
		Str("description", description).
		Msg("API token created")

	return &CreatedAPIToken{
		Token:   token,
		Full:    fullToken,
		Warning: "Make sure to copy your API token now. You won't be able to see it again!",
	}, nil
}

// GetByBranch retrieves all active API tokens for a branch
func (s *APITokenService) GetByBranch(ctx context.Context, branchID int32) ([]*domain.APIToken, error) {
	tokens, err := s.repo.GetByBranch(ctx, branchID)
	if err != nil {
		log.Error().Err(err).Int32("branch_id", branchID).Msg("Failed to get API tokens")
		return nil, err
	}
	return tokens, nil
}

// Revoke revokes an API token
func (s *APITokenService) Revoke(ctx context.Context, branchID int32, tokenID uuid.UUID) error {
	if err := s.repo.Revoke(ctx, branchID, tokenID); err != nil {
		log.Error().Err(err).
			Int32("branch_id", branchID).
			Str("token_id", tokenID.String()).
			Msg("Failed to revoke API token")
		return err
	}

	log.Info().
		Int32("branch_id", branchID).
		Str("token_id", tokenID.String()).
		Msg("API token revoked")

	return nil
}

// ValidateToken validates an API token and returns the associated token data
func (s *APITokenService) ValidateToken(ctx context.Context, token string) (*domain.APIToken, error) {
	if len(token) < len(tokenPrefix) || token[:len(tokenPrefix)] != tokenPrefix {
		return nil, domain.ErrAPITokenNotFound
	}

	apiToken, err := s.repo.GetByHash(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}

	// Update last used timestamp asynchronously
	go func() {
		if updateErr := s.repo.UpdateLastUsed(context.Background(), apiToken.ID); updateErr != nil {
			log.Error().Err(updateErr).Str("token_id", apiToken.ID.String()).Msg("Failed to update last_used_at")
		}
	}()

	return apiToken, nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() (string, error) {
	bytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Use URL-safe base64 encoding without padding
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// hashToken creates a SHA-256 hash of the token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}
