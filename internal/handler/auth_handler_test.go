package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/budgetbook/budgetbook-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Helper to set up auth context
func setupAuthContext(c echo.Context, auth0ID string, email, name, picture string) {
	setupAuthContextWithLedger(c, auth0ID, email, name, picture, uuid.Nil, 0)
}

// Helper to set up auth context with the resolved user and ledger
func setupAuthContextWithLedger(c echo.Context, auth0ID string, email, name, picture string, userID uuid.UUID, ledgerID int32) {
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
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	}
	if ledgerID > 0 {
		ctx = context.WithValue(ctx, middleware.LedgerIDKey, ledgerID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	ledgerRepo := testutil.NewMockLedgerRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo, ledgerRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|newuser123", "new@example.com", "New User", "https://example.com/pic.jpg")

	if err := handler.Callback(c); err != nil {
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
	if response.User.Email != "new@example.com" {
		t.Errorf("Expected email 'new@example.com', got %s", response.User.Email)
	}
	if response.Ledger.Kind != "personal" {
		t.Errorf("Expected personal ledger, got %s", response.Ledger.Kind)
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockLedgerRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|noemail", "", "", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCallback_NoAuth(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockLedgerRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestMe_ReturnsActiveGroup(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	ledgerRepo := testutil.NewMockLedgerRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo, ledgerRepo))

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|me", Email: "me@example.com"}
	userRepo.AddUser(user)
	ledgerRepo.AddLedger(&domain.Ledger{ID: 1, Kind: domain.LedgerKindPersonal, OwnerID: user.ID, Name: "Personal"})
	ledgerRepo.AddLedger(&domain.Ledger{ID: 2, Kind: domain.LedgerKindGroup, OwnerID: user.ID, Name: "Flat", MemberCount: 1})
	active := int32(2)
	user.ActiveLedgerID = &active

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithLedger(c, "auth0|me", "me@example.com", "", "", user.ID, 2)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Ledger.Name != "Flat" || response.Ledger.Kind != "group" {
		t.Errorf("Expected group ledger Flat, got %+v", response.Ledger)
	}
}

func TestMe_UserNotFound(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository(), testutil.NewMockLedgerRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|ghost", "ghost@example.com", "", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
