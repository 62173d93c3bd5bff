package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/middleware"
	"github.com/nramli/gadai/gadai-backend/internal/service"
	"github.com/nramli/gadai/gadai-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Helper to set up auth context
func setupAuthContext(c echo.Context, auth0ID string, email, name, picture string) {
	setupAuthContextWithBranch(c, auth0ID, email, name, picture, 0)
}

// Helper to set up auth context with branch ID
func setupAuthContextWithBranch(c echo.Context, auth0ID string, email, name, picture string, branchID int32) {
	customClaims := &middleware.CustomClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	if branchID > 0 {
		ctx = context.WithValue(ctx, middleware.BranchIDKey, branchID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Set up auth context with claims
	setupAuthContext(c, "auth0|newuser123", "siti@example.com", "Siti", "https://example.com/pic.jpg")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.IsNewUser {
		t.Error("Expected IsNewUser to be true for new user")
	}

	if response.User.Email != "siti@example.com" {
		t.Errorf("Expected email 'siti@example.com', got %s", response.User.Email)
	}

	// First sign-in provisions a branch named from the email local part
	if response.Branch.Name != "siti branch" {
		t.Errorf("Expected branch name 'siti branch', got %s", response.Branch.Name)
	}
}

func TestCallback_ExistingUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	// Pre-create user and branch
	auth0ID := "auth0|existing123"
	existingBranch := branchRepo.AddBranch(&domain.Branch{
		ID:   1,
		Name: "Kuantan HQ",
		Code: "KTN01",
	})
	userRepo.AddUser(&domain.User{
		ID:       uuid.New(),
		BranchID: existingBranch.ID,
		Auth0ID:  auth0ID,
		Email:    "existing@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "existing@example.com", "Existing User", "")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}

	if response.Branch.Name != "Kuantan HQ" {
		t.Errorf("Expected branch name 'Kuantan HQ', got %s", response.Branch.Name)
	}
}

func TestCallback_MissingAuth0ID(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// No auth context at all
	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Claims without an email
	setupAuthContext(c, "auth0|noemail", "", "No Email", "")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestMe_Success(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	auth0ID := "auth0|me123"
	branch := branchRepo.AddBranch(&domain.Branch{
		ID:   1,
		Name: "Melaka Outlet",
		Code: "MLK02",
	})
	branchRepo.LinkUser(auth0ID, branch)
	userRepo.AddUser(&domain.User{
		ID:       uuid.New(),
		BranchID: branch.ID,
		Auth0ID:  auth0ID,
		Email:    "me@example.com",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithBranch(c, auth0ID, "me@example.com", "Me", "", branch.ID)

	err := handler.Me(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.User.Email != "me@example.com" {
		t.Errorf("Expected email 'me@example.com', got %s", response.User.Email)
	}

	if response.Branch.ID != branch.ID {
		t.Errorf("Expected branch ID %d, got %d", branch.ID, response.Branch.ID)
	}
}

func TestMe_MissingBranchID(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Auth context without branch ID
	setupAuthContext(c, "auth0|nobranch", "nobranch@example.com", "", "")

	err := handler.Me(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
}

func TestMe_UserNotFound(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithBranch(c, "auth0|ghost", "ghost@example.com", "", "", 1)

	err := handler.Me(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestLogout_Success(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|bye", "bye@example.com", "", "")

	err := handler.Logout(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response LogoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Message == "" {
		t.Error("Expected a logout message")
	}
}

func TestLogout_MissingAuth0ID(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	branchRepo := testutil.NewMockBranchRepository()
	authService := service.NewAuthService(userRepo, branchRepo)
	handler := NewAuthHandler(authService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Logout(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
