package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo   domain.UserRepository
	branchRepo domain.BranchRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, branchRepo domain.BranchRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	Branch    *domain.Branch
	IsNewUser bool
}

// AuthenticateUser handles the flow after the Auth0 callback. A first-time
// sign-in provisions the staff record and a branch for it; an existing user
// resolves to their branch.
func (s *AuthService) AuthenticateUser(auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err == nil {
		branch, err := s.branchRepo.GetByID(user.BranchID)
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get branch")
			return nil, err
		}
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
		return &AuthResult{User: user, Branch: branch, IsNewUser: false}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to look up user")
		return nil, err
	}

	branch, err := s.createDefaultBranch(email)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create branch")
		return nil, err
	}

	user, err = s.userRepo.Create(&domain.User{
		BranchID:   branch.ID,
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
	})
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create user")
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Int32("branch_id", branch.ID).Msg("Created new user with branch")
	return &AuthResult{User: user, Branch: branch, IsNewUser: true}, nil
}

// createDefaultBranch provisions a branch for a first-time sign-in.
func (s *AuthService) createDefaultBranch(email string) (*domain.Branch, error) {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	code := strings.ToUpper(uuid.New().String()[:8])

	return s.branchRepo.Create(&domain.Branch{
		Name: fmt.Sprintf("%s branch", name),
		Code: code,
	})
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetBranchByAuth0ID resolves the branch for an Auth0 subject, used by the
// auth middleware to scope every request.
func (s *AuthService) GetBranchByAuth0ID(auth0ID string) (*domain.Branch, error) {
	return s.branchRepo.GetByUserAuth0ID(auth0ID)
}
