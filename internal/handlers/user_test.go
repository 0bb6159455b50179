package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/verso-app/verso-api/internal/middleware"
	"github.com/verso-app/verso-api/internal/models"
	"github.com/verso-app/verso-api/internal/services"
	"github.com/verso-app/verso-api/pkg/dto"
	"github.com/verso-app/verso-api/tests/testutil"
)

func setupUserTest(t *testing.T) (*testutil.MockUserService, http.Handler, *services.JWTService) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)
	app.Patch("/users/me", handler.UpdateMe)

	return mockUserService, app, jwtSvc
}

func TestUserHandler_GetMe_Success(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	picture := "https://example.com/ana.png"
	user := &models.User{
		ID:       userID,
		Email:    "ana@example.com",
		Name:     "Ana",
		Picture:  &picture,
		Provider: "google",
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	token := generateTestToken(t, jwtSvc, userID, "ana@example.com")
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, userID, response.ID)
	assert.Equal(t, "ana@example.com", response.Email)
	assert.Equal(t, "google", response.Provider)
	require.NotNil(t, response.Picture)
	assert.Equal(t, picture, *response.Picture)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GetMe_NotFound(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()

	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, assert.AnError)

	token := generateTestToken(t, jwtSvc, userID, "ghost@example.com")
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_GetMe_Unauthenticated(t *testing.T) {
	_, app, _ := setupUserTest(t)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	updated := &models.User{
		ID:       userID,
		Email:    "ana@example.com",
		Name:     "Ana Marija",
		Provider: "google",
	}

	mockUserService.On("Update", mock.Anything, userID, "Ana Marija").Return(updated, nil)

	body := dto.UpdateUserRequest{Name: "Ana Marija"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "ana@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Ana Marija", response.Name)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_EmptyName(t *testing.T) {
	mockUserService, app, jwtSvc := setupUserTest(t)

	userID := uuid.New()

	body := dto.UpdateUserRequest{Name: ""}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "ana@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")

	mockUserService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
