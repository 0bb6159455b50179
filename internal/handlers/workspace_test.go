package handlers

import (
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

func setupWorkspaceTest(t *testing.T) (*testutil.MockWorkspaceService, *testutil.MockUserService, http.Handler, *services.JWTService) {
	t.Helper()
	mockWorkspaceService := new(testutil.MockWorkspaceService)
	mockUserService := new(testutil.MockUserService)
	handler := NewWorkspaceHandler(mockWorkspaceService, mockUserService)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces", handler.List)

	return mockWorkspaceService, mockUserService, app, jwtSvc
}

func TestWorkspaceHandler_List_PersonalFirst(t *testing.T) {
	mockWorkspaceService, mockUserService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	bandID := uuid.New()
	user := &models.User{ID: userID, Name: "Ana", Email: "ana@example.com"}
	workspaces := []services.Workspace{
		{ID: userID, Name: "Ana", Personal: true, Role: models.RoleAdmin},
		{ID: bandID, Name: "The Offbeats", Personal: false, Role: models.RoleMember},
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockWorkspaceService.On("List", mock.Anything, user).Return(workspaces, nil)

	token := generateTestToken(t, jwtSvc, userID, "ana@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.WorkspaceResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response, 2)

	assert.True(t, response[0].Personal)
	assert.Equal(t, userID, response[0].ID)
	assert.False(t, response[1].Personal)
	assert.Equal(t, "The Offbeats", response[1].Name)
	assert.Equal(t, models.RoleMember, response[1].Role)

	mockWorkspaceService.AssertExpectations(t)
	mockUserService.AssertExpectations(t)
}

func TestWorkspaceHandler_List_UnknownUser(t *testing.T) {
	mockWorkspaceService, mockUserService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()

	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, assert.AnError)

	token := generateTestToken(t, jwtSvc, userID, "ghost@example.com")
	req := httptest.NewRequest(http.MethodGet, "/workspaces", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockWorkspaceService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestWorkspaceHandler_List_Unauthenticated(t *testing.T) {
	_, _, app, _ := setupWorkspaceTest(t)

	req := httptest.NewRequest(http.MethodGet, "/workspaces", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
